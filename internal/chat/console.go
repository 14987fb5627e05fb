package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// ConsoleSessionID names the single session of a console run.
const ConsoleSessionID = "console"

// RunConsole reads one query per line from in and writes each reply to out
// until in is exhausted or ctx is cancelled. A cancelled ctx returns at once,
// even while a read is blocked.
func RunConsole(ctx context.Context, svc *Service, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, Banner())
	defer svc.Sessions.End(ConsoleSessionID)

	lines, errc := readLines(ctx, in)
	for {
		fmt.Fprint(out, "\nYour Query: ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			if reply := svc.Handle(ctx, ConsoleSessionID, line); reply != "" {
				fmt.Fprintln(out, reply)
			}
		}
	}
}

// readLines scans in on its own goroutine. lines is closed at end of input,
// after the scan error (possibly nil) has been sent on errc.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
