package videocall

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICEServers(t *testing.T) {
	srvs, err := ICEServers([]string{
		"stun:stun.l.google.com:19302",
		"turn:turn.example.org:3478|alice|s3cret",
	})
	require.NoError(t, err)
	require.Len(t, srvs, 2)

	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, srvs[0].URLs)
	assert.Empty(t, srvs[0].Username)
	assert.Equal(t, "alice", srvs[1].Username)
	assert.Equal(t, "s3cret", srvs[1].Credential)

	b, err := json.Marshal(srvs[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"urls":["stun:stun.l.google.com:19302"]`)
}

func TestICEServersRejectsBadEntries(t *testing.T) {
	for _, raw := range []string{"http://stun.example.org", "turn:x:1|onlyuser"} {
		_, err := ICEServers([]string{raw})
		assert.Error(t, err, raw)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation(OpEndCall, errors.New("bad duration"))))
	assert.Equal(t, KindInternal, KindOf(Recovered(OpEndCall, "boom")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, "validation", KindValidation.String())

	wrapped := Validation(OpSchedule, errors.New("json: cannot unmarshal number"))
	assert.Equal(t, "json: cannot unmarshal number", wrapped.Error())
}
