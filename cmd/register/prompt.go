package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/spec-kit/signup-flow/internal/domain"
	"github.com/spec-kit/signup-flow/internal/form"
)

var labels = map[domain.Field]string{
	domain.FieldFirstName:       "First Name",
	domain.FieldLastName:        "Last Name",
	domain.FieldEmail:           "Email Address",
	domain.FieldPassword:        "Password",
	domain.FieldConfirmPassword: "Confirm Password",
}

type prompter struct {
	in    *bufio.Reader
	fd    int
	isTTY bool
	out   io.Writer
}

func newPrompter(in *os.File, out io.Writer) *prompter {
	fd := int(in.Fd())
	return &prompter{in: bufio.NewReader(in), fd: fd, isTTY: terminal.IsTerminal(fd), out: out}
}

// fill sets every field, preferring preset values. Prompts keep the current
// value when the answer is empty; secret fields are always asked for again.
func (p *prompter) fill(f *form.State, preset map[domain.Field]string, interactive bool) error {
	current := f.Input()
	values := map[domain.Field]string{
		domain.FieldFirstName: current.FirstName,
		domain.FieldLastName:  current.LastName,
		domain.FieldEmail:     current.Email,
	}

	for _, field := range domain.Fields {
		value := preset[field]
		if value == "" && interactive {
			answer, err := p.ask(field, values[field])
			if err != nil {
				return err
			}
			value = answer
		}
		if value == "" {
			value = values[field]
		}
		if err := f.SetField(field, value); err != nil {
			return err
		}
	}
	return nil
}

func (p *prompter) ask(field domain.Field, current string) (string, error) {
	secret := field == domain.FieldPassword || field == domain.FieldConfirmPassword
	if current != "" && !secret {
		fmt.Fprintf(p.out, "%s [%s]: ", labels[field], current)
	} else {
		fmt.Fprintf(p.out, "%s: ", labels[field])
	}

	if secret && p.isTTY {
		raw, err := terminal.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return p.readLine()
}

func (p *prompter) confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	answer, err := p.readLine()
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
