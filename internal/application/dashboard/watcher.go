package dashboard

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/data/scanner"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// FileWatcher reports changes to the data path. A data file is watched
// through its directory so editors that replace the file are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	file    string // set when a single file is watched
	events  chan model.FileEvent
	done    chan struct{}
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		events:  make(chan model.FileEvent, 100),
		done:    make(chan struct{}),
	}

	if info.IsDir() {
		err = fw.addTree(path)
	} else {
		fw.file = filepath.Clean(path)
		err = watcher.Add(filepath.Dir(fw.file))
	}
	if err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()

	return fw, nil
}

// addTree recursively adds directories
func (fw *FileWatcher) addTree(root string) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) relevant(path string) bool {
	if fw.file != "" {
		return filepath.Clean(path) == fw.file
	}
	return scanner.IsDataFile(path)
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.done)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if fw.file == "" && event.Has(fsnotify.Create) {
				if fw.watchNewDir(event) {
					continue
				}
			}
			if !fw.relevant(event.Name) {
				continue
			}
			fw.emit(model.FileEvent{Path: event.Name, Operation: event.Op.String()})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// emit queues ev. Reloads coalesce, so a full queue loses nothing.
func (fw *FileWatcher) emit(ev model.FileEvent) {
	select {
	case fw.events <- ev:
	default:
	}
}

// watchNewDir starts watching a directory created under the data path and
// reports whether event named one. Data files already inside it (a directory
// moved in, or files written before the watch was added) produce an event.
func (fw *FileWatcher) watchNewDir(event fsnotify.Event) bool {
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := fw.addTree(event.Name); err != nil {
		util.LogWarn("failed to watch new directory", util.F("path", event.Name), util.F("error", err))
		return true
	}

	files, err := scanner.NewFileScanner(event.Name).Scan()
	if err != nil || len(files) == 0 {
		return true
	}
	fw.emit(model.FileEvent{Path: files[0], Operation: event.Op.String()})
	return true
}

func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	return err
}
