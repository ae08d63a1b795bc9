// Package vault walks a directory of markdown documents and extracts raw
// task items for the parser, playing the role of the document index: it
// supplies location metadata and pre-extracts bracket-dialect fields the
// parser prefers over inline text.
package vault

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"planline/internal/model"
	"planline/internal/taskline"
)

var (
	checkboxLine = regexp.MustCompile(`^([ \t]*)(?:[-*+]|\d+\.) \[(.)\] (.*)$`)
	headingLine  = regexp.MustCompile(`^#{1,6} +(.*?)\s*$`)
)

// frontmatter is the subset of document metadata the scanner surfaces.
type frontmatter struct {
	Date string `yaml:"date"`
}

// ScanDir walks root for markdown files and returns every task item found.
// Item paths are slash-separated and relative to root.
func ScanDir(root string) ([]taskline.Item, error) {
	var items []taskline.Item
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		fromFile, err := scanFile(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		items = append(items, fromFile...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func scanFile(path, rel string) ([]taskline.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Scan(f, rel)
}

type node struct {
	indent   int
	item     taskline.Item
	children []*node
}

// Scan reads one markdown document and extracts its task items. Malformed
// lines never fail the scan; they simply produce no item.
func Scan(r io.Reader, path string) ([]taskline.Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		roots   []*node
		stack   []*node
		heading string
		docDate string
	)

	line := -1
	inFrontmatter := false
	var frontmatterLines []string

	for scanner.Scan() {
		line++
		text := scanner.Text()

		if line == 0 && text == "---" {
			inFrontmatter = true
			continue
		}
		if inFrontmatter {
			if text == "---" {
				inFrontmatter = false
				var fm frontmatter
				if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), &fm); err == nil {
					docDate = fm.Date
				}
				continue
			}
			frontmatterLines = append(frontmatterLines, text)
			continue
		}

		if m := headingLine.FindStringSubmatch(text); m != nil {
			heading = m[1]
			stack = stack[:0]
			continue
		}
		if strings.TrimSpace(text) == "" {
			stack = stack[:0]
			continue
		}

		if m := checkboxLine.FindStringSubmatch(text); m != nil {
			indent := indentWidth(m[1])
			n := &node{
				indent: indent,
				item:   newItem(m[3], m[2], path, heading, line, docDate),
			}
			for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else {
				roots = append(roots, n)
			}
			stack = append(stack, n)
			continue
		}

		// Continuation lines indented under the innermost open item become
		// that item's notes.
		indent := indentWidth(leadingWhitespace(text))
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.item.Text += "\n" + strings.TrimSpace(text)
			top.item.Position.EndLine = line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	items := make([]taskline.Item, 0, len(roots))
	for _, n := range roots {
		items = append(items, materialize(n))
	}
	return items, nil
}

func materialize(n *node) taskline.Item {
	it := n.item
	for _, child := range n.children {
		it.Children = append(it.Children, materialize(child))
	}
	return it
}

func newItem(title, status, path, heading string, line int, docDate string) taskline.Item {
	it := taskline.Item{
		Text:    title,
		Path:    path,
		Section: path,
		Heading: heading,
		Line:    line,
		Status:  status,
		Position: model.Position{
			StartLine: line,
			EndLine:   line,
		},
		Tags: taskline.TagsIn(title),
	}
	it.Fields = itemFields(title, docDate)
	return it
}

// itemFields pre-extracts bracket-dialect annotations from the title line,
// routing recognized keys to their typed field and everything else to the
// opaque extras.
func itemFields(title, docDate string) taskline.Fields {
	fields := taskline.Fields{Date: docDate}
	for key, value := range taskline.InlineFields(title) {
		switch key {
		case "scheduled":
			fields.Scheduled = value
		case "length":
			fields.Length = value
		case "startTime":
			fields.StartTime = value
		case "endTime":
			fields.EndTime = value
		case "due":
			fields.Due = value
		case "start":
			fields.Start = value
		case "created":
			fields.Created = value
		case "completion":
			fields.Completion = value
		case "priority":
			fields.Priority = value
		case "repeat":
			fields.Repeat = value
		case "date":
			fields.Date = value
		case "allDay":
			// Presence of a date without a startTime already means all-day.
		default:
			if fields.Extra == nil {
				fields.Extra = make(map[string]string)
			}
			fields.Extra[key] = value
		}
	}
	return fields
}

func leadingWhitespace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}

func indentWidth(ws string) int {
	width := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			width += 4
		} else {
			width++
		}
	}
	return width
}
