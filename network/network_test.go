package network_test

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"semnet/network"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/penguin.sn
var penguin string

//go:embed testdata/plane.sn
var plane string

func load(t *testing.T, text string) *network.Network {
	t.Helper()
	logger, _ := test.NewNullLogger()
	n, err := network.New(text, network.Options{Logger: logger})
	require.NoError(t, err)
	return n
}

func TestScenarioInheritance(t *testing.T) {
	n := load(t, penguin)

	got, err := n.Query("1:?:?")
	require.NoError(t, err)
	assert.Equal(t, []network.Triple{
		{Subject: "Penguin", Relation: "has-property", Object: "Warm-blooded"},
		{Subject: "Penguin", Relation: "is-a", Object: "Bird"},
		{Subject: "Penguin", Relation: "is-a", Object: "Animal"},
	}, got.Triples)
	assert.False(t, got.Membership)
}

func TestScenarioMembership(t *testing.T) {
	n := load(t, penguin)

	a, err := n.Query("1:1:3")
	require.NoError(t, err)
	assert.True(t, a.Membership)
	assert.True(t, a.Holds)

	a, err = n.Query("1:1:0")
	require.NoError(t, err)
	assert.True(t, a.Membership)
	assert.False(t, a.Holds)
}

func TestQueryKeysAreDecimal(t *testing.T) {
	n := load(t, "#1\n8: Eight\n10: Ten\n#2\n1: near: 0\n#3\n010:1:8\n")

	a, err := n.Query("010:1:8")
	require.NoError(t, err)
	assert.True(t, a.Holds)
	assert.Equal(t, "10:1:8", a.Pattern)

	a, err = n.Query("10:?:?")
	require.NoError(t, err)
	assert.Equal(t, []network.Triple{{Subject: "Ten", Relation: "near", Object: "Eight"}}, a.Triples)
}

func TestScenarioMissingSection(t *testing.T) {
	n, err := network.Load(filepath.Join("testdata", "missing_relations.sn"), network.Options{})
	assert.True(t, errors.Is(err, network.ErrMissingSection), "got %v", err)
	assert.Nil(t, n)
}

func TestScenarioUnknownSubject(t *testing.T) {
	n := load(t, penguin)
	_, err := n.Query("5:?:?")
	assert.True(t, errors.Is(err, network.ErrUnknownIdentifier))

	var ierr *network.IdentifierError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, network.ObjectKind, ierr.Kind)
	assert.Equal(t, 5, ierr.ID)
}

func TestQueryErrors(t *testing.T) {
	n := load(t, penguin)
	tests := map[string]error{
		"?:7:?":   network.ErrUnknownIdentifier,
		"?:?:9":   network.ErrUnknownIdentifier,
		"1:7:2":   network.ErrUnknownIdentifier,
		"1:1:9":   network.ErrUnknownIdentifier,
		"1:?":     network.ErrInvalidPattern,
		"x:y:z":   network.ErrInvalidPattern,
		"1:1:1:1": network.ErrInvalidPattern,
	}
	for q, want := range tests {
		t.Run(q, func(t *testing.T) {
			_, err := n.Query(q)
			assert.True(t, errors.Is(err, want), "got %v", err)
		})
	}

	// a failed query leaves later queries unaffected
	a, err := n.Query("2:1:3")
	require.NoError(t, err)
	assert.True(t, a.Holds)
}

func TestQueryByRelation(t *testing.T) {
	n := load(t, plane)
	got, err := n.Query("?:2:?")
	require.NoError(t, err)
	assert.Equal(t, []network.Triple{
		{Subject: "Wing", Relation: "part-of", Object: "Airplane"},
		{Subject: "Flap", Relation: "part-of", Object: "Airplane"},
		{Subject: "Flap", Relation: "part-of", Object: "Wing"},
		{Subject: "Jet engine", Relation: "part-of", Object: "Airplane"},
	}, got.Triples)

	got, err = n.Query("?:?:8")
	require.NoError(t, err)
	assert.Equal(t, []network.Triple{
		{Subject: "Boeing 747", Relation: "can", Object: "Flies"},
		{Subject: "Airliner", Relation: "can", Object: "Flies"},
		{Subject: "Airplane", Relation: "can", Object: "Flies"},
	}, got.Triples)
}

func TestQueryNoMatches(t *testing.T) {
	n := load(t, plane)
	a, err := n.Query("8:?:?")
	require.NoError(t, err)
	assert.Empty(t, a.Triples)
	assert.False(t, a.Membership)
}

func TestWildcardCompleteness(t *testing.T) {
	for name, text := range map[string]string{"penguin": penguin, "plane": plane} {
		t.Run(name, func(t *testing.T) {
			n := load(t, text)
			a, err := n.Query("?:?:?")
			require.NoError(t, err)

			m := n.Closed()
			labels := n.Labels(0)
			var want []network.Triple
			for i := 0; i < m.Size(); i++ {
				for j := 0; j < m.Size(); j++ {
					if id := m.At(i, j); id != network.NoRelation {
						want = append(want, network.Triple{Subject: labels[i], Relation: n.RelationName(id), Object: labels[j]})
					}
				}
			}
			assert.Equal(t, want, a.Triples)
			assert.Len(t, a.Triples, m.Count())
		})
	}
}

func TestMembershipRoundTrip(t *testing.T) {
	n := load(t, plane)
	objects := n.Objects()
	relations := n.Relations()
	m := n.Closed()

	for i, lhs := range objects {
		for j, rhs := range objects {
			for _, rel := range relations {
				holds, err := n.Ask(lhs.Key, rel.ID, rhs.Key)
				require.NoError(t, err)
				assert.Equal(t, m.At(i, j) == rel.ID, holds, "%d:%d:%d", lhs.Key, rel.ID, rhs.Key)
			}
		}
	}
}

func TestClosureMonotone(t *testing.T) {
	n := load(t, plane)
	asserted, closed := n.Asserted(), n.Closed()
	for i := 0; i < asserted.Size(); i++ {
		for j := 0; j < asserted.Size(); j++ {
			if v := asserted.At(i, j); v != network.NoRelation {
				assert.Equal(t, v, closed.At(i, j))
			}
		}
	}
	assert.Equal(t, 7, asserted.Count())
	assert.Equal(t, 12, closed.Count())
}

func TestInheritanceDecidedBySubjectRelation(t *testing.T) {
	n := load(t, "#1\n1: I\n2: A\n3: B\n4: P\n#2\n1: is-a: 1\n2: part-of: 2\n3: has: 0\n#3\n1:2:2\n2:2:3\n1:1:3\n3:3:4\n")

	holds, err := n.Ask(1, 3, 4)
	require.NoError(t, err)
	assert.True(t, holds)

	a, err := n.Query("1:?:?")
	require.NoError(t, err)
	assert.Equal(t, []network.Triple{
		{Subject: "I", Relation: "part-of", Object: "A"},
		{Subject: "I", Relation: "is-a", Object: "B"},
		{Subject: "I", Relation: "has", Object: "P"},
	}, a.Triples)
}

func TestUnknownReferenceInFact(t *testing.T) {
	tests := map[string]network.IdentifierKind{
		"#1\n1: A\n#2\n1: r: 0\n#3\n1:1:2\n": network.ObjectKind,
		"#1\n1: A\n#2\n1: r: 0\n#3\n2:1:1\n": network.ObjectKind,
		"#1\n1: A\n#2\n1: r: 0\n#3\n1:2:1\n": network.RelationKind,
	}
	for text, kind := range tests {
		_, err := network.New(text, network.Options{})
		var ierr *network.IdentifierError
		require.True(t, errors.As(err, &ierr), "got %v", err)
		assert.Equal(t, kind, ierr.Kind)
	}
}

func TestDuplicateFact(t *testing.T) {
	text := "#1\n1: A\n2: B\n#2\n1: likes: 0\n2: hates: 0\n#3\n1:1:2\n1:2:2\n"

	logger, hook := test.NewNullLogger()
	n, err := network.New(text, network.Options{Logger: logger})
	require.NoError(t, err)
	holds, err := n.Ask(1, 2, 2)
	require.NoError(t, err)
	assert.True(t, holds, "last fact wins")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	assert.Equal(t, []network.Triple{
		{Subject: "A", Relation: "likes", Object: "B"},
		{Subject: "A", Relation: "hates", Object: "B"},
	}, n.AssertedTriples(), "both facts are still drawn")

	_, err = network.New(text, network.Options{StrictFacts: true, Logger: logger})
	assert.True(t, errors.Is(err, network.ErrDuplicateFact))
}

func TestDebugLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	_, err := network.New(penguin, network.Options{Debug: true, Logger: logger})
	require.NoError(t, err)

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "network closed")
	assert.Len(t, messages, 3)
}

func TestAnswerCache(t *testing.T) {
	logger, _ := test.NewNullLogger()
	n, err := network.New(penguin, network.Options{CacheSize: 4, Logger: logger})
	require.NoError(t, err)

	first, err := n.Query("?:1:?")
	require.NoError(t, err)
	first.Triples[0].Subject = "changed"

	second, err := n.Query(" ? : 1 : ? ")
	require.NoError(t, err)
	assert.Equal(t, "Penguin", second.Triples[0].Subject)
	assert.Len(t, second.Triples, 3)
}

func TestCollaboratorViews(t *testing.T) {
	n := load(t, plane)

	assert.Equal(t, plane, n.Setup())
	assert.Equal(t, network.Triple{Subject: "Boeing 747", Relation: "is-a", Object: "Airliner"}, n.AssertedTriples()[0])
	assert.Len(t, n.AssertedTriples(), 7)
	n.AssertedTriples()[0].Subject = "changed"
	assert.Equal(t, "Boeing 747", n.AssertedTriples()[0].Subject)
	assert.Equal(t, "Boei", n.Labels(4)[0])
	assert.Equal(t, "Boeing 747", n.Labels(0)[0])
	assert.Equal(t, "", n.RelationName(42))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.sn")
	require.NoError(t, os.WriteFile(path, []byte(penguin), 0o644))

	logger, _ := test.NewNullLogger()
	n, err := network.Load(path, network.Options{Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, penguin, n.Setup())

	_, err = network.Load(filepath.Join(t.TempDir(), "absent.sn"), network.Options{})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
