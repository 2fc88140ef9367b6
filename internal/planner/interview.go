package planner

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Interview collects task names and their ratings from r, prompting on w.
// Task names are read one per line until an empty line. Ratings outside
// [MinRating, MaxRating] or non-numeric answers are asked again.
func Interview(r io.Reader, w io.Writer) ([]Task, error) {
	in := bufio.NewScanner(r)

	fmt.Fprintln(w, "Enter your tasks, one per line (empty line to finish):")
	var names []string
	for {
		fmt.Fprint(w, "> ")
		line, ok := readLine(in)
		if !ok || line == "" {
			break
		}
		names = append(names, line)
	}
	if err := in.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	tasks := make([]Task, 0, len(names))
	for _, name := range names {
		impact, err := askRating(in, w, fmt.Sprintf("Impact of %q (%d-%d): ", name, MinRating, MaxRating))
		if err != nil {
			return nil, err
		}
		effort, err := askRating(in, w, fmt.Sprintf("Effort of %q (%d-%d): ", name, MinRating, MaxRating))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, NewTask(name, impact, effort))
	}
	return tasks, nil
}

func askRating(in *bufio.Scanner, w io.Writer, prompt string) (int, error) {
	for {
		fmt.Fprint(w, prompt)
		line, ok := readLine(in)
		if !ok {
			if err := in.Err(); err != nil {
				return 0, fmt.Errorf("read rating: %w", err)
			}
			return 0, io.ErrUnexpectedEOF
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(w, "Please enter a number.")
			continue
		}
		if n < MinRating || n > MaxRating {
			fmt.Fprintf(w, "Please enter a value between %d and %d.\n", MinRating, MaxRating)
			continue
		}
		return n, nil
	}
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
