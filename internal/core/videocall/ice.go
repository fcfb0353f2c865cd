package videocall

import (
	"fmt"
	"strings"

	"github.com/pion/webrtc/v4"
)

// ICEServers turns configured urls into the list browsers expect in
// RTCConfiguration.iceServers. Entries may carry credentials as
// "turn:host:port|user|secret".
func ICEServers(urls []string) ([]webrtc.ICEServer, error) {
	out := make([]webrtc.ICEServer, 0, len(urls))
	for _, raw := range urls {
		parts := strings.Split(raw, "|")
		u := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(u, "stun:") && !strings.HasPrefix(u, "stuns:") &&
			!strings.HasPrefix(u, "turn:") && !strings.HasPrefix(u, "turns:") {
			return nil, fmt.Errorf("ice server %q: unsupported scheme", u)
		}
		srv := webrtc.ICEServer{URLs: []string{u}}
		switch len(parts) {
		case 1:
		case 3:
			srv.Username = parts[1]
			srv.Credential = parts[2]
			srv.CredentialType = webrtc.ICECredentialTypePassword
		default:
			return nil, fmt.Errorf("ice server %q: expected url or url|user|credential", raw)
		}
		out = append(out, srv)
	}
	return out, nil
}
