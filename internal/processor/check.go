package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/pkg/executor"
)

// CheckTool verifies binary can be run and returns the first line of its
// version output.
func CheckTool(ctx context.Context, exec executor.Executor, binary string) (string, error) {
	if _, err := exec.LookPath(binary); err != nil {
		return "", fmt.Errorf("%w: %s not found: %v", model.ErrToolUnavailable, binary, err)
	}

	out, err := exec.Execute(ctx, binary, "-version")
	if err != nil {
		return "", fmt.Errorf("%w: %s -version: %v", model.ErrToolUnavailable, binary, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return line, nil
}
