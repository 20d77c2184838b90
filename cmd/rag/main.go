// Command rag is a question-answering chatbot over a Java textbook.
package main

import (
	"os"

	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/Nithin345256/LLM-based-java-chatbot/cmd/rag/app"
)

func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
