package aptdb

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/model"
)

// Stanza is one paragraph of a Debian control file. Keys keep their
// original case; continuation lines are joined with newlines.
type Stanza map[string]string

// maxLineLength bounds a single control file line.
const maxLineLength = 1024 * 1024

// ReadStanzas calls fn for every paragraph in r. Paragraphs are separated by
// blank lines; lines starting with '#' are ignored.
func ReadStanzas(r io.Reader, fn func(Stanza) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)

	current := Stanza{}
	var key string
	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		err := fn(current)
		current = Stanza{}
		key = ""
		return err
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		if line[0] == '#' {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if key != "" {
				current[key] += "\n" + strings.TrimSpace(line)
			}
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(name)
		current[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return flush()
}

// Installed reports whether a dpkg status stanza describes an installed
// package ("install ok installed", "hold ok installed").
func (s Stanza) Installed() bool {
	fields := strings.Fields(s["Status"])
	return len(fields) == 3 && fields[2] == "installed"
}

// Version converts a stanza to a model.Version. origins may be nil.
func (s Stanza) Version(origins []model.OriginRecord) *model.Version {
	summary, description := splitDescription(s["Description"])
	v := &model.Version{
		Version:       s["Version"],
		Architecture:  s["Architecture"],
		Summary:       summary,
		Description:   description,
		Section:       s["Section"],
		Priority:      s["Priority"],
		Homepage:      s["Homepage"],
		Maintainer:    s["Maintainer"],
		Size:          parseInt(s["Size"]),
		InstalledSize: parseInt(s["Installed-Size"]) * 1024,
		Origins:       origins,
	}
	if tags, ok := s["Tag"]; ok {
		tags = strings.ReplaceAll(tags, "\n", " ")
		v.RawTags = &tags
	}

	for _, field := range []string{"Pre-Depends", "Depends"} {
		v.Dependencies = append(v.Dependencies, ParseRelations(s[field])...)
	}
	return v
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// splitDescription returns the synopsis line and the extended description.
// A lone "." in the extended part marks a paragraph break.
func splitDescription(raw string) (string, string) {
	summary, rest, _ := strings.Cut(raw, "\n")
	if rest == "" {
		return strings.TrimSpace(summary), ""
	}
	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if line == "." {
			lines[i] = ""
		}
	}
	return strings.TrimSpace(summary), strings.Join(lines, "\n")
}

// ParseRelations parses a relationship field such as
// "libc6 (>= 2.34), foo | bar:any (<< 2)" into OR-groups.
func ParseRelations(field string) [][]model.Dependency {
	field = strings.TrimSpace(strings.ReplaceAll(field, "\n", " "))
	if field == "" {
		return nil
	}

	var groups [][]model.Dependency
	for _, group := range strings.Split(field, ",") {
		var alternatives []model.Dependency
		for _, alt := range strings.Split(group, "|") {
			if dep, ok := parseRelation(alt); ok {
				alternatives = append(alternatives, dep)
			}
		}
		if len(alternatives) > 0 {
			groups = append(groups, alternatives)
		}
	}
	return groups
}

func parseRelation(s string) (model.Dependency, bool) {
	s = strings.TrimSpace(s)
	name, rest := s, ""
	if end := strings.IndexAny(s, " \t([<"); end >= 0 {
		name, rest = s[:end], strings.TrimSpace(s[end:])
	}
	// "python3:any" names the same package
	if n, _, ok := strings.Cut(name, ":"); ok {
		name = n
	}
	if name == "" {
		return model.Dependency{}, false
	}

	dep := model.Dependency{Name: name}
	if strings.HasPrefix(rest, "(") {
		constraint, _, _ := strings.Cut(rest[1:], ")")
		constraint = strings.TrimSpace(constraint)
		i := 0
		for i < len(constraint) && strings.IndexByte("<>=", constraint[i]) >= 0 {
			i++
		}
		dep.Relation = constraint[:i]
		dep.Version = strings.TrimSpace(constraint[i:])
	}
	return dep, true
}
