package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/namecast/internal/model"
)

const workflowDesc = "Invoicing for independent designers"

func registeredEverywhere(labels ...string) map[string]bool {
	out := make(map[string]bool)
	for _, l := range labels {
		for _, tld := range DefaultOptions().TLDs {
			out[l+tld] = true
		}
	}
	return out
}

func candidateNames(cs []model.NameCandidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestWorkflow_RejectsShortDescription(t *testing.T) {
	e := New(DefaultOptions())

	_, err := e.Workflow(context.Background(), WorkflowRequest{Description: "  short  "})
	assert.ErrorIs(t, err, ErrDescriptionTooShort)
	assert.True(t, IsInputError(err))
}

func TestWorkflow_FiltersOrdersAndRecommends(t *testing.T) {
	registered := registeredEverywhere("brightly")
	registered["quillon.com"] = true
	domains := &fakeDomains{registered: registered}
	gen := &fakeGenerator{names: []string{"lumora", "Quillon", "Brightly", "Vantor"}}
	e := New(DefaultOptions(), WithDomainLookup(domains), WithNameGenerator(gen))

	res, err := e.Workflow(context.Background(), WorkflowRequest{
		Description:   " " + workflowDesc + " ",
		Ideas:         []string{"Lumora", " ", "Zyphr"},
		MaxToEvaluate: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, workflowDesc, res.ProjectDescription)
	assert.Equal(t, workflowDesc, gen.desc)
	assert.Equal(t, 10, gen.count)
	assert.Equal(t, []string{"Lumora", "Zyphr", "Quillon", "Brightly", "Vantor"}, candidateNames(res.Candidates))
	assert.Equal(t, 4, res.ViableCount)
	assert.Equal(t, 3, res.EvaluatedCount)

	byName := make(map[string]model.NameCandidate)
	for _, c := range res.Candidates {
		byName[c.Name] = c
	}
	assert.Equal(t, model.SourceUser, byName["Lumora"].Source)
	assert.Equal(t, model.SourceGenerated, byName["Vantor"].Source)

	brightly := byName["Brightly"]
	assert.False(t, brightly.PassedDomainFilter)
	assert.Equal(t, noDomainReason, brightly.RejectionReason)
	assert.Equal(t, map[string]bool{".com": false, ".ai": false, ".io": false}, brightly.DomainsAvailable)
	assert.Nil(t, brightly.Evaluation)

	// Quillon lacks .com so Vantor takes the last evaluation slot.
	quillon := byName["Quillon"]
	assert.True(t, quillon.PassedDomainFilter)
	assert.False(t, quillon.DomainsAvailable[".com"])
	assert.Nil(t, quillon.Evaluation)
	for _, name := range []string{"Lumora", "Zyphr", "Vantor"} {
		require.NotNil(t, byName[name].Evaluation, name)
	}

	require.NotNil(t, res.Recommended)
	best := byName[res.Recommended.Name]
	require.NotNil(t, best.Evaluation)
	assert.Equal(t, best.Evaluation.OverallScore, res.Recommended.Score)
	assert.Equal(t, best.Source, res.Recommended.Source)
	for _, c := range res.Candidates {
		if c.Evaluation != nil {
			assert.LessOrEqual(t, c.Evaluation.OverallScore, res.Recommended.Score, c.Name)
		}
	}
}

func TestWorkflow_GeneratorFailureKeepsIdeas(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("anthropic: overloaded")}
	e := New(DefaultOptions(), WithDomainLookup(allAvailable()), WithNameGenerator(gen))

	res, err := e.Workflow(context.Background(), WorkflowRequest{
		Description:   workflowDesc,
		Ideas:         []string{"Lumora"},
		GenerateCount: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, gen.count)
	assert.Equal(t, []string{"Lumora"}, candidateNames(res.Candidates))
	require.NotNil(t, res.Recommended)
	assert.Equal(t, "Lumora", res.Recommended.Name)
	assert.Equal(t, model.SourceUser, res.Recommended.Source)
}

func TestWorkflow_CapsGeneratedNames(t *testing.T) {
	gen := &fakeGenerator{names: []string{"Alpha", "Bravo", "Charlie"}}
	e := New(DefaultOptions(), WithDomainLookup(allAvailable()), WithNameGenerator(gen))

	res, err := e.Workflow(context.Background(), WorkflowRequest{
		Description:   workflowDesc,
		GenerateCount: 2,
		MaxToEvaluate: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "Bravo"}, candidateNames(res.Candidates))
	assert.Equal(t, 2, res.ViableCount)
	assert.Equal(t, 1, res.EvaluatedCount)
	require.NotNil(t, res.Recommended)
	assert.Equal(t, "Alpha", res.Recommended.Name)
}

func TestWorkflow_NoViableCandidates(t *testing.T) {
	domains := &fakeDomains{registered: registeredEverywhere("lumora")}
	e := New(DefaultOptions(), WithDomainLookup(domains))

	res, err := e.Workflow(context.Background(), WorkflowRequest{
		Description: workflowDesc,
		Ideas:       []string{"Lumora", "!!"},
	})
	require.NoError(t, err)

	require.Len(t, res.Candidates, 2)
	assert.Equal(t, noDomainReason, res.Candidates[0].RejectionReason)
	assert.Equal(t, ErrNameUnusable.Error(), res.Candidates[1].RejectionReason)
	assert.Nil(t, res.Candidates[1].DomainsAvailable)
	assert.Zero(t, res.ViableCount)
	assert.Zero(t, res.EvaluatedCount)
	assert.Nil(t, res.Recommended)
}

func TestWorkflow_UnknownDomainsDoNotPass(t *testing.T) {
	e := New(DefaultOptions())

	res, err := e.Workflow(context.Background(), WorkflowRequest{
		Description: workflowDesc,
		Ideas:       []string{"Lumora"},
	})
	require.NoError(t, err)

	require.Len(t, res.Candidates, 1)
	assert.False(t, res.Candidates[0].PassedDomainFilter)
	assert.Nil(t, res.Recommended)
}
