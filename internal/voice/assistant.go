package voice

// Assistant is the inline assistant definition understood by the voice SDK.
type Assistant struct {
	Name         string      `json:"name"`
	FirstMessage string      `json:"firstMessage"`
	Transcriber  Transcriber `json:"transcriber"`
	Voice        Voice       `json:"voice"`
	Model        Model       `json:"model"`
}

type Transcriber struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

type Voice struct {
	Provider        string  `json:"provider"`
	VoiceID         string  `json:"voiceId"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarityBoost"`
	Speed           float64 `json:"speed"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"useSpeakerBoost"`
}

type Model struct {
	Provider string         `json:"provider"`
	Model    string         `json:"model"`
	Messages []ModelMessage `json:"messages"`
}

type ModelMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// interviewerPrompt is rendered by the voice vendor; {{questions}} and
// {{context}} come from StartRequest.VariableValues.
const interviewerPrompt = `You are a professional job interviewer running a real-time voice interview with a candidate. Assess their qualifications, motivation and fit for the role.
{{context}}
Interview guidelines:
Work through these questions in order:
{{questions}}

Engage naturally and react to what the candidate says. Listen, acknowledge each answer before moving on, and ask a short follow-up when an answer is vague or needs detail.
Keep the conversation flowing while staying in control of it.

Be professional, polite and warm. Keep every reply short and simple, as in a real voice conversation, and do not ramble.
If the candidate asks about the role, the company or expectations, give a clear, brief answer; if you do not know, point them to HR.

Close the interview properly: thank the candidate for their time and tell them the company will reach out soon with feedback. End on a positive note.`

// Interviewer returns the assistant used for question-list interviews.
func Interviewer() *Assistant {
	return &Assistant{
		Name:         "Interviewer",
		FirstMessage: "Hello! Thank you for taking the time to speak with me today. I'm excited to learn more about you and your experience.",
		Transcriber: Transcriber{
			Provider: "deepgram",
			Model:    "nova-2",
			Language: "en",
		},
		Voice: Voice{
			Provider:        "11labs",
			VoiceID:         "sarah",
			Stability:       0.4,
			SimilarityBoost: 0.8,
			Speed:           0.9,
			Style:           0.5,
			UseSpeakerBoost: true,
		},
		Model: Model{
			Provider: "openai",
			Model:    "gpt-4",
			Messages: []ModelMessage{{Role: "system", Content: interviewerPrompt}},
		},
	}
}
