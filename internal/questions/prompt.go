package questions

import (
	"fmt"
	"strings"

	"prepwise/utils"
)

const DefaultAmount = 5

type ResumeJobInput struct {
	Resume         string
	JobDescription string
	Role           string
	Level          string
	Type           string
	Amount         int
}

// BuildResumeJobPrompt asks for questions tailored to the gap between a
// resume and a job description.
func BuildResumeJobPrompt(in ResumeJobInput) string {
	amount := in.Amount
	if amount <= 0 {
		amount = DefaultAmount
	}

	var sb strings.Builder
	sb.WriteString("Create a personalized technical interview for a candidate based on their resume and the job description.\n\n")
	fmt.Fprintf(&sb, "Resume:\n%s\n\n", in.Resume)
	fmt.Fprintf(&sb, "Job Description:\n%s\n\n", in.JobDescription)
	sb.WriteString("Instructions:\n")
	fmt.Fprintf(&sb, "1. Generate %d interview questions that assess the candidate's fit for this specific role\n", amount)
	fmt.Fprintf(&sb, "2. The questions should focus on %s aspects\n", utils.OrDefault(in.Type, "a balance of technical and behavioral"))
	fmt.Fprintf(&sb, "3. Evaluate the candidate's experience level (%s) and match questions to this level\n", utils.OrDefault(in.Level, "as shown in their resume"))
	sb.WriteString("4. Include questions that specifically address the gap between the candidate's resume and job requirements\n")
	fmt.Fprintf(&sb, "5. For the job role of %s\n", utils.OrDefault(in.Role, "the position in the job description"))
	sb.WriteString("6. Format your response as a valid JSON array of strings: [\"Question 1\", \"Question 2\", \"Question 3\"]\n")
	sb.WriteString("7. The questions are going to be read by a voice assistant so do not use \"/\" or \"*\" or any other special characters which might break the voice assistant\n\n")
	sb.WriteString("Return ONLY the JSON array with no explanation or additional text.")
	return sb.String()
}

type RoleInput struct {
	Role      string
	Level     string
	Type      string
	Techstack []string
	Amount    int
}

// BuildRolePrompt asks for questions for a preset role without any resume.
func BuildRolePrompt(in RoleInput) string {
	amount := in.Amount
	if amount <= 0 {
		amount = DefaultAmount
	}
	return fmt.Sprintf(`Prepare questions for a job interview.
The job role is %s.
The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
The amount of questions required is: %d.
Please return only the questions, without any additional text.
The questions are going to be read by a voice assistant so do not use "/" or "*" or any other special characters which might break the voice assistant.
Return the questions formatted like this:
["Question 1", "Question 2", "Question 3"]`,
		in.Role, utils.OrDefault(in.Level, "any"), utils.OrDefault(strings.Join(in.Techstack, ", "), "not specified"),
		utils.OrDefault(in.Type, "a balance of technical and behavioral"), amount)
}
