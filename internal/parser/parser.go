// Package parser reads cards written as Q:/A:/T: blocks in markdown notes.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/cardstore/internal/domain"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	titlePrefix    = "T:"
	separator      = "---"
)

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
	readingTitle
)

// ParseFile reads a file from the given path and extracts all cards.
func ParseFile(path string) ([]domain.CardInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all cards. A card starts at a
// Q: line; A: and T: lines fill its answer and title, and any following
// lines continue the current field until the next prefix, a --- separator,
// or the next Q:. Cards without a question are dropped.
func Parse(r io.Reader) ([]domain.CardInput, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.CardInput
	var current domain.CardInput
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.TrimRight(strings.Join(block, "\n"), "\n")
		switch currentState {
		case readingQuestion:
			current.Question = content
		case readingAnswer:
			current.Answer = content
		case readingTitle:
			current.Title = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Question != "" {
			cards = append(cards, current)
		}
		current = domain.CardInput{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == separator {
			finishCard()
			continue
		}

		prefix, next := matchPrefix(line)
		if prefix == "" {
			if currentState != seeking {
				block = append(block, line)
			}
			continue
		}

		flushBlock()
		if next == readingQuestion && currentState != seeking {
			finishCard()
		}
		currentState = next
		block = append(block, strings.TrimPrefix(line[len(prefix):], " "))
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func matchPrefix(line string) (string, state) {
	switch {
	case strings.HasPrefix(line, questionPrefix):
		return questionPrefix, readingQuestion
	case strings.HasPrefix(line, answerPrefix):
		return answerPrefix, readingAnswer
	case strings.HasPrefix(line, titlePrefix):
		return titlePrefix, readingTitle
	}
	return "", seeking
}
