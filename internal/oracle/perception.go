package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/namecast/internal/model"
	"github.com/sells-group/namecast/pkg/anthropic"
)

const (
	maxIndustries         = 4
	fallbackAlignment     = 5.0
	fallbackAlignmentNote = "Unable to evaluate alignment."
)

// Persona is a simulated person asked for their reaction to a name.
type Persona struct {
	Name       string
	Age        int
	Occupation string
	Background string
}

// DefaultPersonas is a deliberately mixed panel.
var DefaultPersonas = []Persona{
	{"Sarah", 28, "Software Engineer", "Tech-savvy millennial who works at a startup. Values innovation and authenticity."},
	{"Robert", 55, "Small Business Owner", "Runs a local accounting firm. Conservative, values trust and reliability."},
	{"Maya", 34, "Marketing Director", "Works at a Fortune 500 company. Expert in branding, very critical of names."},
	{"James", 42, "Investor", "VC partner who evaluates hundreds of startups. Focuses on market positioning."},
	{"Lisa", 22, "College Student", "Gen Z, heavy social media user. Cares about authenticity and social impact."},
}

const personaSystem = `You answer questions about proposed brand names while role-playing a specific person.
Stay in character and answer from that person's background and perspective.
Respond ONLY with a JSON object of this shape:
{
  "evokes": "what the name makes you think of, 1-2 sentences",
  "industry_guess": "the industry or type of company you would guess",
  "would_trust": true,
  "memorable": true,
  "explanation": "your overall impression, 2-3 sentences"
}`

// Perception polls a panel of personas about a name and aggregates their
// answers. It implements evaluator.PerceptionOracle.
type Perception struct {
	caller
	personas []Persona
}

// NewPerception creates a perception oracle using the first cfg.Personas
// default personas.
func NewPerception(client anthropic.Client, cfg Config) *Perception {
	n := len(DefaultPersonas)
	if cfg.Personas > 0 && cfg.Personas < n {
		n = cfg.Personas
	}
	return &Perception{
		caller:   newCaller(client, cfg),
		personas: DefaultPersonas[:n],
	}
}

type personaReply struct {
	Evokes        string `json:"evokes"`
	IndustryGuess string `json:"industry_guess"`
	WouldTrust    *bool  `json:"would_trust"`
	Memorable     *bool  `json:"memorable"`
	Explanation   string `json:"explanation"`
}

type alignmentReply struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Perceive asks every persona about name. The first persona is asked alone
// to warm the shared prompt cache; the rest are asked concurrently. Personas
// that fail are left out; an error is returned only when none answered.
func (p *Perception) Perceive(ctx context.Context, name, mission string) (*model.PerceptionResult, error) {
	if len(p.personas) == 0 {
		return nil, eris.New("oracle: no personas configured")
	}
	system := anthropic.BuildCachedSystemBlocks(personaSystem)

	answers := make([]*model.PersonaResponse, len(p.personas))
	answers[0] = p.ask(ctx, system, p.personas[0], name, mission, anthropic.PrimerRequest)

	g, gctx := errgroup.WithContext(ctx)
	for i := 1; i < len(p.personas); i++ {
		g.Go(func() error {
			answers[i] = p.ask(gctx, system, p.personas[i], name, mission, direct)
			return nil
		})
	}
	_ = g.Wait()

	var responses []model.PersonaResponse
	for _, a := range answers {
		if a != nil {
			responses = append(responses, *a)
		}
	}
	if len(responses) == 0 {
		return nil, eris.Errorf("oracle: no persona answered for %q", name)
	}

	res := Aggregate(responses)
	res.Evokes = p.synthesize(ctx, name, responses)
	if mission != "" {
		score, note := p.alignment(ctx, name, mission, res.Evokes)
		res.MissionAlignment = &score
		res.MissionExplanation = note
	}
	return res, nil
}

func (p *Perception) ask(ctx context.Context, system []anthropic.SystemBlock, persona Persona, name, mission string, send sendFunc) *model.PersonaResponse {
	log := zap.L().With(zap.String("name", name), zap.String("persona", persona.Name))

	req := p.request(system, personaPrompt(persona, name, mission), 500)
	text, err := p.complete(ctx, "perception", req, send)
	if err != nil {
		log.Warn("oracle: persona failed", zap.Error(err))
		return nil
	}

	var reply personaReply
	if err := decode(text, personaSchema, &reply); err != nil {
		log.Warn("oracle: persona reply unusable", zap.Error(err))
		return nil
	}

	return &model.PersonaResponse{
		Persona:       persona.Name,
		Age:           persona.Age,
		Occupation:    persona.Occupation,
		Evokes:        reply.Evokes,
		IndustryGuess: reply.IndustryGuess,
		WouldTrust:    reply.WouldTrust == nil || *reply.WouldTrust,
		Memorable:     reply.Memorable == nil || *reply.Memorable,
		Explanation:   reply.Explanation,
	}
}

// Aggregate combines persona answers. Evokes is the first persona's answer;
// Perceive replaces it with a model synthesis when one is available.
func Aggregate(responses []model.PersonaResponse) *model.PerceptionResult {
	res := &model.PerceptionResult{
		Memorability: "low",
		Personas:     responses,
		Source:       model.PerceptionSourceOracle,
	}
	if len(responses) == 0 {
		return res
	}

	var trusted, memorable int
	seen := make(map[string]bool)
	for _, r := range responses {
		if r.WouldTrust {
			trusted++
		}
		if r.Memorable {
			memorable++
		}
		industry := strings.TrimSpace(r.IndustryGuess)
		key := strings.ToLower(industry)
		if industry != "" && !seen[key] && len(res.IndustryAssociation) < maxIndustries {
			seen[key] = true
			res.IndustryAssociation = append(res.IndustryAssociation, industry)
		}
	}

	n := float64(len(responses))
	trustRate := float64(trusted) / n
	memorableRate := float64(memorable) / n
	res.ConsensusScore = (trustRate + memorableRate) / 2

	switch {
	case memorableRate >= 0.8:
		res.Memorability = "high"
	case memorableRate >= 0.5:
		res.Memorability = "medium"
	}

	res.Evokes = responses[0].Evokes
	return res
}

// synthesize summarizes what the name evokes across personas, falling back
// to the first persona's answer.
func (p *Perception) synthesize(ctx context.Context, name string, responses []model.PersonaResponse) string {
	fallback := responses[0].Evokes

	var b strings.Builder
	fmt.Fprintf(&b, "Given these diverse reactions to the brand name %q:\n\n", name)
	for _, r := range responses {
		fmt.Fprintf(&b, "- %s (%d, %s): %q\n", r.Persona, r.Age, r.Occupation, r.Evokes)
	}
	b.WriteString("\nSynthesize them into a single 1-2 sentence summary of what this name evokes. Be specific and concrete.")

	text, err := p.complete(ctx, "perception_synthesis", p.request(nil, b.String(), 150), direct)
	if err != nil {
		zap.L().Warn("oracle: evokes synthesis failed", zap.String("name", name), zap.Error(err))
		return fallback
	}
	if text = strings.TrimSpace(text); text == "" {
		return fallback
	}
	return text
}

// alignment rates how well name fits mission on a 1-10 scale.
func (p *Perception) alignment(ctx context.Context, name, mission, evokes string) (float64, string) {
	prompt := fmt.Sprintf(`Evaluate how well the brand name %q aligns with this company mission:

Mission: %s

The name evokes: %s

Rate the alignment from 1-10 and explain briefly. Respond ONLY with JSON:
{"score": 7, "explanation": "2-3 sentences"}`, name, mission, evokes)

	text, err := p.complete(ctx, "mission_alignment", p.request(nil, prompt, 200), direct)
	if err == nil {
		var reply alignmentReply
		if err = decode(text, alignmentSchema, &reply); err == nil {
			return clamp(reply.Score, 1, 10), reply.Explanation
		}
	}
	zap.L().Warn("oracle: mission alignment failed", zap.String("name", name), zap.Error(err))
	return fallbackAlignment, fallbackAlignmentNote
}

func personaPrompt(persona Persona, name, mission string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %d-year-old %s.\n", persona.Name, persona.Age, persona.Occupation)
	fmt.Fprintf(&b, "Background: %s\n\n", persona.Background)
	fmt.Fprintf(&b, "Brand name: %q\n", name)
	if mission != "" {
		fmt.Fprintf(&b, "The company's mission is: %s\n", mission)
	}
	return b.String()
}
