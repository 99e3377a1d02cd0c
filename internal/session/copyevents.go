package session

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkzk/dired/internal/copyqueue"
)

// copyProgressMsg and copyCompleteMsg wrap copyqueue's channel events as
// tea.Msg, the only way that background worker is allowed to touch Status:
// by posting into the event loop's own queue instead of mutating state
// from its own goroutine.
type copyProgressMsg copyqueue.ProgressEvent

func (m copyProgressMsg) line() string {
	return fmt.Sprintf("copying... job %d: %d%%", m.JobIndex, m.Percent)
}

type copyCompleteMsg copyqueue.CompleteEvent

// listenCopyProgress and listenCopyComplete each re-arm themselves: every
// successful read returns a tea.Cmd that performs the next read, so the
// channel is drained for the lifetime of the program instead of just once.
func listenCopyProgress(q *copyqueue.Queue) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-q.Progress()
		if !ok {
			return nil
		}
		return copyProgressMsg(ev)
	}
}

func listenCopyComplete(q *copyqueue.Queue) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-q.Complete()
		if !ok {
			return nil
		}
		return copyCompleteMsg(ev)
	}
}

func (s *Status) handleCopyComplete(m copyCompleteMsg) {
	if len(m.Errors) == 0 {
		s.LogLine = fmt.Sprintf("job %d complete", m.JobIndex)
	} else {
		s.LogLine = fmt.Sprintf("job %d finished with %d error(s)", m.JobIndex, len(m.Errors))
	}
	if m.Kind == copyqueue.Move {
		failed := make(map[string]bool, len(m.Errors))
		for _, fe := range m.Errors {
			failed[fe.Path] = true
		}
		for _, src := range m.Sources {
			if !failed[src] {
				s.ipc.Moved(src, filepath.Join(m.Destination, filepath.Base(src)))
			}
		}
	}
	for _, t := range s.Tabs {
		_ = t.Directory.Refresh(s.Users)
	}
}

// startCopy enqueues a job and arms the two listeners, batched so both
// channels are drained regardless of which fires first.
func (s *Status) startCopy(job copyqueue.Job) tea.Cmd {
	s.CopyQueue.Enqueue(job)
	go s.CopyQueue.Run()
	return tea.Batch(listenCopyProgress(s.CopyQueue), listenCopyComplete(s.CopyQueue))
}
