package services

import (
	"fmt"
	"strings"

	"talentflow/recruitment-api/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCVAnalysisSystemPrompt returns the fixed evaluation rubric for CV
// scoring. The band table is authoritative: the analyzer re-derives the
// passed/rejected verdict from the numeric score after parsing.
func (pb *PromptBuilder) BuildCVAnalysisSystemPrompt() string {
	return `You are an expert HR recruiter and CV analyst. You will analyze a candidate's CV against a job posting and provide a structured evaluation.

You must respond with ONLY valid JSON matching this exact schema:
{
  "score": <number 0-100>,
  "status": "<passed|rejected>",
  "review": "<detailed 2-4 sentence review of the candidate's fit>",
  "strengths": ["<strength 1>", "<strength 2>", ...],
  "weaknesses": ["<weakness 1>", "<weakness 2>", ...],
  "recommendation": "<1-2 sentence final recommendation>"
}

Scoring guidelines:
- 80-100: Excellent fit, strong match on most requirements → status: "passed"
- 60-79: Good fit, meets key requirements with some gaps → status: "passed"
- 40-59: Moderate fit, meets some requirements but has notable gaps → status: "rejected"
- 0-39: Poor fit, does not meet most requirements → status: "rejected"

Be fair, objective, and constructive in your analysis.`
}

// BuildCVAnalysisUserPrompt embeds the job posting, optional retrieved
// requirement context, and the extracted CV text.
func (pb *PromptBuilder) BuildCVAnalysisUserPrompt(job *models.Job, requirementContext, cvText string) string {
	var b strings.Builder

	b.WriteString("## Job Details\n")
	fmt.Fprintf(&b, "**Title:** %s\n", job.Title)
	fmt.Fprintf(&b, "**Company:** %s\n", companyName(job))
	fmt.Fprintf(&b, "**Type:** %s\n", job.Type)
	fmt.Fprintf(&b, "**Location:** %s\n", strOrNA(job.Location))
	fmt.Fprintf(&b, "**Remote Status:** %s\n", job.RemoteStatus)
	fmt.Fprintf(&b, "**Experience Level:** %s\n", experienceOrNA(job.ExperienceLevel))
	fmt.Fprintf(&b, "**Department:** %s\n\n", strOrNA(job.Department))

	fmt.Fprintf(&b, "**Description:**\n%s\n\n", strOr(job.Description, "No description provided."))
	fmt.Fprintf(&b, "**Requirements:**\n%s\n\n", strOr(job.Requirements, "No specific requirements listed."))
	fmt.Fprintf(&b, "**Benefits:**\n%s\n\n", strOr(job.Benefits, "No benefits listed."))

	if requirementContext != "" {
		fmt.Fprintf(&b, "**Most Relevant Requirement Excerpts:**\n%s\n\n", requirementContext)
	}

	b.WriteString("---\n\n## Candidate CV Content\n")
	b.WriteString(cvText)
	b.WriteString("\n\n---\n\nAnalyze this CV against the job posting and provide your structured evaluation as JSON.")

	return b.String()
}

// BuildInterviewAnalysisSystemPrompt returns the transcript grading rubric,
// including the six-section markdown review structure.
func (pb *PromptBuilder) BuildInterviewAnalysisSystemPrompt() string {
	return `You are an expert HR recruiter analyzing an interview transcript. You will evaluate the candidate's performance and provide a structured assessment.

You must respond with ONLY valid JSON matching this exact schema:
{
  "score": <number 0-100>,
  "review": "<markdown formatted detailed review using the structure below>",
  "strengths": ["<strength 1>", "<strength 2>", ...],
  "weaknesses": ["<weakness 1>", "<weakness 2>", ...],
  "recommendation": "<1-2 sentence final recommendation>"
}

The "review" field should be in markdown format with the following structure:
## Overall Assessment
A 3-5 sentence summary of the candidate's interview performance.

## Communication Skills
Evaluate clarity, articulation, confidence, and professionalism in responses.

## Technical/Domain Knowledge
Assess the depth and accuracy of the candidate's knowledge relevant to the role.

## Problem-Solving & Critical Thinking
Evaluate how well the candidate structures thoughts and approaches problems.

## Cultural Fit & Motivation
Assess enthusiasm, alignment with company values, and genuine interest in the role.

## Key Highlights
Notable moments or standout answers from the interview.

## Areas for Development
Specific areas where the candidate could improve.

Scoring guidelines:
- 85-100: Outstanding — Exceptional communication, deep expertise, excellent fit → A+ candidate
- 70-84: Strong — Good communication, solid knowledge, clear potential → Recommended
- 55-69: Average — Adequate responses but lacks depth or confidence in key areas → Consider with reservations
- 40-54: Below Average — Struggled with several questions, gaps in knowledge → Not recommended
- 0-39: Poor — Unable to answer most questions adequately → Reject

Be fair, thorough, and constructive. Consider the role requirements when scoring.`
}

// BuildInterviewAnalysisUserPrompt embeds job context, the question set used
// during the interview, the speaker-labelled transcript, and call metadata.
func (pb *PromptBuilder) BuildInterviewAnalysisUserPrompt(job *models.Job, candidateName, questions, transcript string, callDurationSeconds int) string {
	var b strings.Builder

	b.WriteString("## Job Context\n")
	fmt.Fprintf(&b, "**Position:** %s\n", job.Title)
	fmt.Fprintf(&b, "**Company:** %s\n", companyName(job))
	fmt.Fprintf(&b, "**Type:** %s\n", job.Type)
	fmt.Fprintf(&b, "**Experience Level:** %s\n", experienceOrNA(job.ExperienceLevel))
	fmt.Fprintf(&b, "**Department:** %s\n\n", strOrNA(job.Department))

	fmt.Fprintf(&b, "**Job Description:**\n%s\n\n", strOr(job.Description, "No description."))
	fmt.Fprintf(&b, "**Requirements:**\n%s\n\n", strOr(job.Requirements, "No specific requirements."))

	b.WriteString("## Interview Questions Used\n")
	if questions == "" {
		questions = "Standard interview questions were used."
	}
	b.WriteString(questions)
	b.WriteString("\n\n## Interview Transcript\n")
	b.WriteString(transcript)

	b.WriteString("\n\n## Call Metadata\n")
	fmt.Fprintf(&b, "- Duration: %d minutes %d seconds\n", callDurationSeconds/60, callDurationSeconds%60)
	if candidateName == "" {
		candidateName = "Unknown"
	}
	fmt.Fprintf(&b, "- Candidate: %s\n", candidateName)

	b.WriteString("\n---\n\nAnalyze this interview transcript and provide your structured evaluation as JSON.")

	return b.String()
}

// BuildAptitudePrompt demands exactly 8 numbered aptitude questions for one
// of the three sub-types. Unknown sub-types fall back to multiple-choice.
func (pb *PromptBuilder) BuildAptitudePrompt(subType, companyName, role, roleDetails string) string {
	descriptions := map[string]string{
		"multiple-choice":   "with clear options (A, B, C, D) covering fundamental concepts, logical thinking, and domain knowledge",
		"coding":            "with clear problem statements, expected inputs/outputs, and constraints",
		"logical-reasoning": "that test analytical thinking, pattern recognition, and problem-solving abilities",
	}

	description, ok := descriptions[subType]
	if !ok {
		description = descriptions["multiple-choice"]
	}

	return fmt.Sprintf(`Generate exactly 8 aptitude test questions for a %s test.

Context:
- Company: %s
- Position: %s
- Focus Areas: %s

Requirements:
- Questions should be %s
- Questions should be specific to the role and company requirements
- Format as a numbered list (1-8)
- Each question should be independent and clear
- For multiple choice, include 4 options (A, B, C, D) and mark the correct answer
- For coding problems, include sample test cases
- For logical reasoning, provide clear problem statements
- Difficulty should range from medium to hard
- No long explanations, just clear questions with options/requirements
`, subType, companyName, role, roleDetails, description)
}

// BuildInterviewQuestionsPrompt demands exactly 10 numbered interview
// questions for one of the three sub-types. Unknown sub-types fall back to
// behavioral.
func (pb *PromptBuilder) BuildInterviewQuestionsPrompt(subType, companyName, role, roleDetails string) string {
	descriptions := map[string]string{
		"technical":  "focus on technical skills, problem-solving, and domain expertise",
		"behavioral": "focus on past experiences, soft skills, and how the candidate handles situations",
		"case-study": "focus on analytical thinking, decision-making, and business acumen with realistic scenarios",
	}

	description, ok := descriptions[subType]
	if !ok {
		description = descriptions["behavioral"]
	}

	return fmt.Sprintf(`Generate exactly 10 interview questions for a %s interview.

Context:
- Company: %s
- Position: %s
- Role Details: %s

Requirements:
- This should %s
- Questions should be specific to the role and company
- Format as a numbered list (1-10)
- Each question should be independent and clear
- No explanations or answers needed, just the questions
- Keep questions concise and professional

Generate only the 10 questions, nothing else.`, subType, companyName, role, roleDetails, description)
}

// BuildInterviewerSystemPrompt configures the live voice assistant that
// conducts the interview using the step's pre-generated question set.
func (pb *PromptBuilder) BuildInterviewerSystemPrompt(job *models.Job, applicantName, questions string) string {
	company := companyName(job)
	if applicantName == "" {
		applicantName = "the candidate"
	}
	if questions == "" {
		questions = "Ask 5 general interview questions relevant to the role."
	}

	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional AI interviewer conducting a virtual interview for %s.\n\n", company)
	b.WriteString("## Role Details\n")
	fmt.Fprintf(&b, "- **Position:** %s\n", job.Title)
	fmt.Fprintf(&b, "- **Company:** %s\n", company)
	fmt.Fprintf(&b, "- **Job Type:** %s\n", job.Type)
	fmt.Fprintf(&b, "- **Department:** %s\n", strOrNA(job.Department))
	fmt.Fprintf(&b, "- **Experience Level:** %s\n\n", experienceOrNA(job.ExperienceLevel))

	fmt.Fprintf(&b, "## Job Description\n%s\n\n", strOr(job.Description, "No description provided."))
	fmt.Fprintf(&b, "## Requirements\n%s\n\n", strOr(job.Requirements, "No specific requirements listed."))

	b.WriteString("## Interview Questions\n")
	b.WriteString("Use these pre-prepared questions as your guide. Ask them one at a time, wait for the candidate's response, then move to the next:\n\n")
	b.WriteString(questions)
	b.WriteString("\n\n## Instructions\n")
	fmt.Fprintf(&b, "1. Start by warmly greeting the candidate by name (%s) and briefly introducing yourself as the AI interviewer for the %s position at %s.\n", applicantName, job.Title, company)
	b.WriteString(`2. Ask the questions ONE AT A TIME. Do not list multiple questions at once.
3. After they answer, briefly acknowledge their response (e.g., "Thank you", "That's interesting", "Great point") before moving to the next question.
4. If a candidate's answer is unclear or too brief, ask a short follow-up to get more detail before moving on.
5. Keep your tone professional, warm, and encouraging throughout.
6. After all questions are done, thank the candidate for their time and let them know the interview is complete.
7. Keep each of your responses concise — under 40 words unless you need to clarify something.
8. Do NOT provide feedback on answers during the interview. Just listen and acknowledge.`)

	return b.String()
}

func companyName(job *models.Job) string {
	if job.Company != nil && job.Company.Name != "" {
		return job.Company.Name
	}
	return "N/A"
}

func strOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

func strOrNA(s *string) string {
	return strOr(s, "N/A")
}

func experienceOrNA(level *models.ExperienceLevel) string {
	if level != nil && *level != "" {
		return string(*level)
	}
	return "N/A"
}
