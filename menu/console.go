package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"quoter/model"
)

// Console is line-oriented operator I/O. It also answers the quote engine's color questions.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Prompt prints label and reads one line. A final line without newline is still returned;
// io.EOF is returned only when nothing was read.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) Writer() io.Writer {
	return c.out
}

func (c *Console) ConfirmMatch(_ context.Context, hero model.Product) (bool, error) {
	for {
		answer, err := c.Prompt(fmt.Sprintf("Should accessories match the %s color (%s)? [y/n]: ", hero.Name, hero.Color))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.Println("Please answer y or n.")
	}
}

func (c *Console) OverrideColor(_ context.Context, _ model.Product) (string, error) {
	for {
		color, err := c.Prompt("Enter accessory color: ")
		if err != nil {
			return "", err
		}
		if color != "" {
			return color, nil
		}
		c.Println("Color cannot be empty.")
	}
}
