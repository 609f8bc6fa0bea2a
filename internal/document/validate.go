package document

import (
	"fmt"
	"strings"
)

// Validate checks a document before it is rebuilt into a tree.
// Returns a slice of all validation errors found.
func Validate(doc *Document) []error {
	var errs []error
	errs = append(errs, validateMinistries("ministries", doc.Ministries)...)
	for i := range doc.Groups {
		errs = append(errs, validateGroup(fmt.Sprintf("groups[%d]", i), &doc.Groups[i])...)
	}
	return errs
}

func validateMinistries(prefix string, ms []Ministry) []error {
	var errs []error
	for i, m := range ms {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		}
		errs = append(errs, validateTags(path, m.Tags)...)
	}
	return errs
}

func validateGroup(path string, g *Group) []error {
	var errs []error
	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	errs = append(errs, validateTags(path, g.Tags)...)
	errs = append(errs, validateMinistries(path+".ministries", g.Ministries)...)
	for i := range g.Groups {
		errs = append(errs, validateGroup(fmt.Sprintf("%s.groups[%d]", path, i), &g.Groups[i])...)
	}
	return errs
}

func validateTags(path string, tags []string) []error {
	var errs []error
	for i, t := range tags {
		if strings.TrimSpace(t) == "" {
			errs = append(errs, fmt.Errorf("%s.tags[%d] must not be empty", path, i))
		}
	}
	return errs
}
