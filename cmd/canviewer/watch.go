package main

import (
	"fmt"
	"sync"
	"time"

	poller "github.com/radovskyb/watcher"

	"github.com/iafilius/CanDashboard/src/logging"
)

// fileWatcher polls one data file and calls onChange after it is written.
type fileWatcher struct {
	delegate *poller.Watcher
	wg       sync.WaitGroup
	once     sync.Once
}

func watchFile(path string, period time.Duration, onChange func()) (*fileWatcher, error) {
	w := &fileWatcher{delegate: poller.New()}
	w.delegate.SetMaxEvents(1)
	w.delegate.FilterOps(poller.Write, poller.Create)
	if err := w.delegate.Add(path); err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case ev := <-w.delegate.Event:
				logging.Debugf("[viewer] %s changed (%s)", ev.Path, ev.Op)
				onChange()
			case err := <-w.delegate.Error:
				logging.Warnf("[viewer] watch %s: %v", path, err)
			case <-w.delegate.Closed:
				return
			}
		}
	}()
	go func() {
		defer w.wg.Done()
		if err := w.delegate.Start(period); err != nil {
			logging.Errorf("[viewer] watcher stopped: %v", err)
		}
	}()
	// Close is a no-op until Start is looping.
	w.delegate.Wait()
	return w, nil
}

func (w *fileWatcher) Close() {
	if w == nil {
		return
	}
	w.once.Do(func() {
		w.delegate.Close()
		w.wg.Wait()
	})
}
