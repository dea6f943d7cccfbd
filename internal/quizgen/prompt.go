package quizgen

import "fmt"

// promptTemplate must stay in lockstep with Validator and domain.QuizDocument.
const promptTemplate = `You are an AI assistant that reads a Wikipedia article and generates an educational quiz.

Follow this format strictly (return valid JSON only):

{
"url": "<article_url>",
"title": "<article_title>",
"summary": "<one paragraph summary>",
"key_entities": {
"people": [],
"organizations": [],
"locations": []
},
"sections": [],
"quiz": [
{
"question": "",
"options": ["A", "B", "C", "D"],
"answer": "",
"difficulty": "easy/medium/hard",
"explanation": ""
}
],
"related_topics": []
}

Rules:

Generate 5–10 questions.
Difficulty levels must vary.
All facts must come from the article.
Do not hallucinate.
Keep JSON valid (no markdown, no text outside JSON).

Article URL: %s
Article Title: %s
Article Content:
%s
`

// BuildPrompt renders the instruction template for one article.
func BuildPrompt(url, title, content string) string {
	return fmt.Sprintf(promptTemplate, url, title, content)
}
