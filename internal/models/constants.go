package models

const (
	// FallbackAnswer replaces the assistant reply when generation fails.
	FallbackAnswer = "Failed to generate an answer."

	// ContextSeparator joins retrieved chunk texts inside the prompt.
	ContextSeparator = "\n\n"
)

var (
	AnswerPromptTemplate = `You are an AI assistant that answers questions based on the provided context.
Your task is to generate a clear and concise answer using ONLY the information from the context.
If the context does not contain enough information, say "I don't know."

Context:
%s

Question:
%s

Answer:
`
)
