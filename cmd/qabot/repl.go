package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"qabot/internal/chat"
)

// engine is the subset of chat.Engine the line shell needs.
type engine interface {
	Process(utterance string) (chat.Reply, error)
	State() chat.State
}

// repl runs the line-oriented shell until the engine asks to exit or in is exhausted.
func repl(in io.Reader, out io.Writer, e engine, name string) error {
	fmt.Fprintf(out, "My name is %s. I will answer your queries. If you want to exit, type Bye!\n", name)
	sc := bufio.NewScanner(in)
	for {
		prompt := "You: "
		if e.State() == chat.AwaitingTeachAnswer {
			prompt = "Answer (or no): "
		}
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		reply, err := e.Process(text)
		if reply.Text != "" {
			fmt.Fprintf(out, "%s: %s\n", name, reply.Text)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if reply.Exit {
			return nil
		}
	}
}
