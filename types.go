package smartreply

// Tone selects the voice of the generated reply.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
	ToneFormal       Tone = "formal"
	ToneConcise      Tone = "concise"
)

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFriendly, ToneFormal, ToneConcise:
		return true
	default:
		return false
	}
}

// NormalizeTone maps empty or unknown tones to ToneProfessional.
func NormalizeTone(t Tone) Tone {
	if t.Valid() {
		return t
	}
	return ToneProfessional
}

// MaxEmailContentLen is the longest email content the service accepts.
const MaxEmailContentLen = 5000

// ReplyRequest is one reply-generation request.
type ReplyRequest struct {
	EmailContent string `json:"emailContent"`
	Tone         Tone   `json:"tone"`
	CustomPrompt string `json:"customPrompt,omitempty"`
}

// QuotaView is the quota state shaped for display and gating. It is
// derived fresh on every query and never persisted.
type QuotaView struct {
	Used        int  `json:"currentUsage"`
	Remaining   int  `json:"remainingCalls"`
	MaxCalls    int  `json:"maxCalls"`
	CanMakeCall bool `json:"canMakeCall"`
}
