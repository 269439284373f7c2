package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildLabelSet(t *testing.T, instance uint32, pairs map[string]string) LabelSet {
	t.Helper()

	var json []byte
	var tuples []LabelTuple
	for name, value := range pairs {
		nameOff := uint32(len(json))
		json = append(json, name...)
		valueOff := uint32(len(json))
		json = append(json, value...)

		tuples = append(tuples, LabelTuple{
			NameOffset: nameOff, NameLength: uint32(len(name)),
			ValueOffset: valueOff, ValueLength: uint32(len(value)),
		})
	}

	return LabelSet{Instance: instance, JSON: json, Tuples: tuples}
}

func TestLabelPayloadRoundTrip(t *testing.T) {
	set := buildLabelSet(t, 1, map[string]string{"role": "db"})
	payload := LabelPayload{
		Stamp:      Timestamp{Sec: 10, Nsec: 0},
		Type:       1,
		Identifier: 2,
		Sets:       []LabelSet{set},
	}

	encoded := EncodeLabelPayload(payload)
	got, err := DecodeLabelPayload(encoded, false, DefaultMaxJSON, DefaultMaxLabels)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestLabelPayloadRejectsOversizedJSON(t *testing.T) {
	set := buildLabelSet(t, 1, map[string]string{"role": "db"})
	payload := LabelPayload{Type: 1, Identifier: 2, Sets: []LabelSet{set}}
	encoded := EncodeLabelPayload(payload)

	_, err := DecodeLabelPayload(encoded, false, 1, DefaultMaxLabels)
	require.Error(t, err)
}

func TestLabelPayloadRejectsExcessiveLabelCount(t *testing.T) {
	set := buildLabelSet(t, 1, map[string]string{"role": "db"})
	payload := LabelPayload{Type: 1, Identifier: 2, Sets: []LabelSet{set}}
	encoded := EncodeLabelPayload(payload)

	_, err := DecodeLabelPayload(encoded, false, DefaultMaxJSON, 0)
	require.Error(t, err)
}

func TestLabelSetSemanticallyEqual(t *testing.T) {
	a := buildLabelSet(t, 1, map[string]string{"role": "db", "az": "us-east"})
	b := buildLabelSet(t, 1, map[string]string{"az": "us-east", "role": "db"})

	require.True(t, a.SemanticallyEqual(b))
}

func TestLabelSetSemanticallyEqualValueMismatchAbortsImmediately(t *testing.T) {
	a := buildLabelSet(t, 1, map[string]string{"role": "db"})
	b := buildLabelSet(t, 1, map[string]string{"role": "cache"})

	require.False(t, a.SemanticallyEqual(b))
}

func TestLabelSetSemanticallyEqualDifferentInstance(t *testing.T) {
	a := buildLabelSet(t, 1, map[string]string{"role": "db"})
	b := buildLabelSet(t, 2, map[string]string{"role": "db"})

	require.False(t, a.SemanticallyEqual(b))
}
