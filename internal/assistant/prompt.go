package assistant

import "fmt"

const systemInstruction = "You are a professional career coach and email drafting assistant. " +
	"Generate only the body of the email in a kind, direct, and professional tone. " +
	"Keep it concise, under 200 words."

func buildPrompt(req DraftRequest) string {
	notes := req.Notes
	if notes == "" {
		notes = "No specific notes recorded."
	}
	return fmt.Sprintf(`Draft a concise, professional follow-up email.
The job title is %q at %q.
The current application status is %q.
Context/Notes from the job seeker: %q.
If the status is 'Applied', draft a check-in email.
If the status is 'Interviewing' or 'Technical Screen', draft a thank-you note or a request for next steps.
If the status is 'Rejected', draft a polite request for feedback.
Do not include placeholders for the recipient's name or your signature. Start directly with a brief opening (e.g., "Dear Hiring Team,").`,
		req.Title, req.Company, req.Status, notes)
}
