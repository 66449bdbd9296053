package rag

// Per-task output token caps. All tasks run at temperature zero.
const (
	analysisMaxTokens = 700
	roleMaxTokens     = 50
	answerMaxTokens   = 500
)

const atsPrompt = `You are an ATS resume analyzer.

Context (resume content):
%s

Tasks:
1. List missing or weak technical skills
2. Suggest clear, actionable improvements
3. Be honest and critical (no sugar-coating)
4. Do NOT add information not present in the resume
5. DO NOT calculate ATS score

Respond strictly in this JSON format:
{
  "missing_skills": [string],
  "suggestions": [string],
  "summary": string
}`

const rolePrompt = `Based ONLY on the resume content below, identify the SINGLE most suitable technical job role.

Rules:
- One role only
- Must be a technical role
- No explanation

Resume:
%s

Respond in JSON:
{ "primary_role": "string" }`

const qaPrompt = `You are answering questions based ONLY on the resume content below.

Context:
%s

Question: %s

Rules:
- Answer ONLY from the context
- If information is missing, say so clearly
- Do NOT assume or hallucinate
- Be concise

Answer:`
