package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/sells-group/namecast/pkg/anthropic"
)

// Names brainstorms brand names for a project description. It implements
// evaluator.NameGenerator.
type Names struct {
	caller
}

// NewNames creates a name generator.
func NewNames(client anthropic.Client, cfg Config) *Names {
	return &Names{caller: newCaller(client, cfg)}
}

type namesReply struct {
	Names []string `json:"names"`
}

// Generate asks the model for up to count names. Blank entries are dropped.
func (o *Names) Generate(ctx context.Context, description string, count int) ([]string, error) {
	req := o.request(nil, namesPrompt(description, count), 1000)
	text, err := o.complete(ctx, "names", req, direct)
	if err != nil {
		return nil, err
	}

	var reply namesReply
	if err := decode(text, namesSchema, &reply); err != nil {
		return nil, err
	}

	out := make([]string, 0, min(count, len(reply.Names)))
	for _, n := range reply.Names {
		if n = strings.TrimSpace(n); n != "" && len(out) < count {
			out = append(out, n)
		}
	}
	return out, nil
}

func namesPrompt(description string, count int) string {
	return fmt.Sprintf(`Suggest %d brand names for this project:

%s

Good names are short (ideally under 10 letters), easy to spell and pronounce, and
distinctive enough to trademark. Mix invented words, compounds and real words used
in a new way. Avoid names of well-known existing companies and generic descriptive phrases.

Respond in JSON:
{"names": ["Name1", "Name2"]}

Respond ONLY with valid JSON.`, count, description)
}
