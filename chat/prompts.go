package chat

import (
	"fmt"
	"strings"
)

const answerPromptTemplate = `You are a friendly assistant helping visitors of a website. Use the following pieces of retrieved context to answer the question. If you don't know the answer based on the context, say that you don't know. Keep the answer concise and do not make anything up.
Format your responses using simple HTML (no markdown formatting or code blocks).

Answer in %s.

Context:
%s`

const multiQueryPromptTemplate = `You are an AI language model assistant. Your task is to generate %d different versions of the given user question to retrieve relevant documents from a vector database. By generating multiple perspectives on the user question, your goal is to help the user overcome some of the limitations of distance-based similarity search.

Provide these alternative questions separated by newlines. Output only the questions, without numbering or any other text.

Original question, asked in %s: %s`

// answerPrompt builds the system prompt for answering a question from
// retrieved context chunks.
func answerPrompt(contextChunks []string, language string) string {
	return fmt.Sprintf(answerPromptTemplate, language, strings.Join(contextChunks, "\n\n"))
}

// multiQueryPrompt builds the prompt asking the model for alternative
// phrasings of a question.
func multiQueryPrompt(question, language string, variants int) string {
	return fmt.Sprintf(multiQueryPromptTemplate, variants, language, question)
}
