// Package gherkin_parser is the parsing boundary: it discovers feature
// files and turns them into gherkin documents and pickles. The runner
// never parses; it consumes the pickles produced here.
package gherkin_parser

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

const (
	FeatureExtension = ".feature"
)

// SearchFeatureFilesIn walks the given directories and collects every
// .feature file.
func SearchFeatureFilesIn(directories []string) ([]string, error) {
	featureFiles := make([]string, 0)

	for _, directory := range directories {
		err := filepath.Walk(directory, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(info.Name(), FeatureExtension) {
				featureFiles = append(featureFiles, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return featureFiles, nil
}

// ParseGherkinFile parses feature text from a reader. Ast node ids come
// from newId. Note the gherkin grammar is permissive about free text
// after a Feature header; only structurally misplaced keywords fail.
func ParseGherkinFile(reader io.Reader, newId func() string) (*messages.GherkinDocument, error) {
	document, err := gherkin.ParseGherkinDocument(reader, newId)
	if err != nil {
		return nil, err
	}

	return document, nil
}

// ParseFeatureFile reads and parses one .feature file, stamping the
// document with the file path as its Uri.
func ParseFeatureFile(path string, newId func() string) (*messages.GherkinDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	document, err := ParseGherkinFile(file, newId)
	if err != nil {
		return nil, err
	}
	document.Uri = path

	return document, nil
}

// CompilePickles expands the document into pickles: fully resolved
// scenarios with tags and examples applied.
func CompilePickles(document *messages.GherkinDocument, newId func() string) []*messages.Pickle {
	return gherkin.Pickles(*document, document.Uri, newId)
}
