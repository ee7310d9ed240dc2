package placement

import (
	"fmt"
	"strings"
)

const generateSystemPrompt = `You are an experienced English teacher writing a short placement test for an adult learner. The test must separate Beginner, Intermediate and Advanced learners.`

func buildGenerateUserMessage(n int, language string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Number of questions: %d\n", n))
	b.WriteString(fmt.Sprintf("Learner's native language: %s\n", language))

	b.WriteString(`
Instructions:
1. Write every question and option in English.
2. Order the questions from easiest to hardest, covering grammar, vocabulary and reading.
3. Each question has exactly four distinct options and exactly one correct answer.
4. correct_answer must be copied character for character from options.
5. Do not number the options or prefix them with letters.`)

	return b.String()
}

const evaluateSystemPrompt = `You are an experienced English teacher grading a placement test. Classify the learner as Beginner, Intermediate or Advanced.`

func buildEvaluateUserMessage(answered []Answered, language string) string {
	var b strings.Builder

	b.WriteString("Answers:\n")
	for i, a := range answered {
		mark := "wrong"
		if a.Answer == a.CorrectAnswer {
			mark = "correct"
		}
		b.WriteString(fmt.Sprintf("%d. Q: %s\n   Learner: %s\n   Correct: %s (%s)\n", i+1, a.Question, a.Answer, a.CorrectAnswer, mark))
	}

	b.WriteString(fmt.Sprintf(`
Instructions:
Choose exactly one level. Weigh harder questions more than easy ones.
Write the feedback in %s, addressed to the learner, in two or three sentences.`, language))

	return b.String()
}
