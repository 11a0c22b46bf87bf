package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"tado/internal/config"
	"tado/internal/service"
	"tado/internal/task"
	"tado/internal/toast"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a 1-based task number from args. The number refers to
// the task's position in unfiltered API order, as printed by the list
// command.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// findTaskByNumber loads the task list and returns the task at the 1-based
// position num, along with the full list it was found in.
func findTaskByNumber(ctx context.Context, svc service.Service, num int) (service.Task, []service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, nil, err
	}
	if num < 1 || num > len(tasks) {
		return service.Task{}, nil, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], tasks, nil
}

// newFlows wires mutation flows to a fresh store and CLI toasts.
func newFlows(cfg *config.Config, svc service.Service, out, errOut io.Writer) *task.Flows {
	return task.NewFlows(svc, task.NewStore(), &toast.Writer{Out: out, Err: errOut, Quiet: cfg.Quiet})
}

// confirm prints the prompt and reads one line from in. Only "y" or "yes"
// (case-insensitive) accept.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
