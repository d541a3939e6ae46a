/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package modelgen

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/suparena/openregister/fieldtypes"
	"github.com/suparena/openregister/resources"
	"github.com/suparena/openregister/schema"
)

// modelFieldMapping maps register datatypes to Django model field classes.
// Datetimes become plain CharFields because Django has no truncated-precision
// datetime field.
var modelFieldMapping = map[string]string{
	fieldtypes.DatatypeString:    "models.CharField(max_length=255, blank=True, null=True)",
	fieldtypes.DatatypeText:      "models.TextField(blank=True, null=True)",
	fieldtypes.DatatypeInteger:   "models.IntegerField(null=True)",
	fieldtypes.DatatypeURL:       "models.URLField(max_length=255, null=True)",
	fieldtypes.DatatypeDatetime:  "models.CharField(max_length=20, null=True)",
	fieldtypes.DatatypeTimestamp: "models.DateTimeField(null=True)",
	fieldtypes.DatatypeCurie:     "models.CharField(max_length=255, blank=True, null=True)",
	fieldtypes.DatatypeItemHash:  "models.CharField(max_length=255, blank=True, null=True)",
}

const genericModelField = "models.CharField(max_length=255, blank=True, null=True)"

var modelTemplate = template.Must(template.New("model").Parse(`{{.Imports}}


class {{.ModelName}}Manager(models.Manager):
    def get_by_natural_key(self, key):
        return self.get(key=key)

    def load_data_from_register(self, clear=False):
        if clear:
            self.all().delete()
        register = self.model.get_register_client()
        for record in register.get_records():
            item = record.item
            self.create(
                key=record.key,
                {{.CopyRecordItem}}
            )


class {{.ModelName}}(models.Model):
    """
    Represents items stored in the "{{.RegisterName}}" register
    """
    key = models.CharField(primary_key=True, max_length=255)

    {{.Fields}}

    objects = {{.ModelName}}Manager()

    @classmethod
    def get_register_url(cls):
        return {{.BaseURL}}

    {{.RegisterMethods}}

    def __repr__(self):
        return '<{{.ModelName}} %s>' % self.key

    def natural_key(self):
        return self.key,
`))

// Factory generates Django model code and data fixtures for one register's
// resolved schema.
type Factory struct {
	resolved    *schema.Resolved
	baseURL     string
	urlTemplate string
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithRootTemplate records the URL template of the register environment the
// schema was discovered from. The generated model then reconstructs its
// client through the root "register" register instead of a fixed base URL.
func WithRootTemplate(urlTemplate string) FactoryOption {
	return func(f *Factory) {
		f.urlTemplate = urlTemplate
	}
}

// New creates a Factory for a resolved schema. baseURL is the register's own
// base URL, baked into the generated model.
func New(resolved *schema.Resolved, baseURL string, opts ...FactoryOption) *Factory {
	f := &Factory{
		resolved: resolved,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ModelName returns the Django model class name derived from the register
// name.
func (f *Factory) ModelName() string {
	return CamelCase(f.resolved.Register())
}

// ModelCode renders the Django model module for the register.
func (f *Factory) ModelCode() (string, error) {
	view := struct {
		Imports         string
		ModelName       string
		RegisterName    string
		Fields          string
		CopyRecordItem  string
		BaseURL         string
		RegisterMethods string
	}{
		Imports:         f.imports(),
		ModelName:       f.ModelName(),
		RegisterName:    f.resolved.Register(),
		Fields:          f.fieldLines(),
		CopyRecordItem:  f.copyRecordItem(),
		BaseURL:         pyStr(f.baseURL),
		RegisterMethods: f.registerMethods(),
	}

	var b strings.Builder
	if err := modelTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render model template: %w", err)
	}
	return strings.TrimSpace(b.String()) + "\n", nil
}

func (f *Factory) imports() string {
	statements := []string{
		"from django.db import models",
		"",
	}
	for _, spec := range f.resolved.Fields() {
		if spec.Cardinality == fieldtypes.CardinalityMany {
			statements = append(statements, "from openregister_client.django_compat.fields import ListField")
			break
		}
	}
	if f.urlTemplate != "" {
		statements = append(statements, "from openregister_client.registers import Register")
	} else {
		statements = append(statements, "from openregister_client.registers import OpenRegister")
	}
	return strings.Join(statements, "\n")
}

func (f *Factory) fieldLines() string {
	var lines []string
	for _, spec := range f.resolved.Fields() {
		lines = append(lines, fmt.Sprintf("%s = %s", AttrName(spec.Name), modelField(spec)))
	}
	return strings.Join(lines, "\n    ")
}

func (f *Factory) copyRecordItem() string {
	var assignments []string
	for _, spec := range f.resolved.Fields() {
		attr := AttrName(spec.Name)
		assignments = append(assignments, fmt.Sprintf("%s=item.%s", attr, attr))
	}
	return strings.Join(assignments, ",\n                ")
}

func (f *Factory) registerMethods() string {
	name := pyStr(f.resolved.Register())
	if f.urlTemplate == "" {
		return strings.TrimSpace(fmt.Sprintf(`
    @classmethod
    def get_register_client(cls):
        return OpenRegister(name=%s, base_url=%s)
`, name, pyStr(f.baseURL)))
	}

	rootURL := strings.TrimSuffix(fmt.Sprintf(f.urlTemplate, "register"), "/")
	return strings.TrimSpace(fmt.Sprintf(`
    @classmethod
    def get_register_client(cls):
        return cls.get_root_register_client().get_register(%s)

    @classmethod
    def get_root_register_url(cls):
        return %s

    @classmethod
    def get_root_register_client(cls):
        return Register(name='register', url_template=%s)
`, name, pyStr(rootURL), pyStr(f.urlTemplate)))
}

func modelField(spec schema.FieldSpec) string {
	if spec.Cardinality == fieldtypes.CardinalityMany {
		return "ListField(null=True)"
	}
	if field, ok := modelFieldMapping[spec.Datatype]; ok {
		return field
	}
	return genericModelField
}

// fixture is one element of a Django data fixture file.
type fixture struct {
	Model  string         `json:"model"`
	PK     string         `json:"pk"`
	Fields map[string]any `json:"fields"`
}

// WriteFixtures serialises records as a Django data fixture. Field values are
// written in their typed wire form; fields missing from an item are null.
func (f *Factory) WriteFixtures(modelName string, records []resources.Record, w io.Writer) error {
	fixtures := make([]fixture, 0, len(records))
	for _, record := range records {
		item, err := record.Item()
		if err != nil {
			return err
		}
		fields := make(map[string]any, f.resolved.Len())
		for _, spec := range f.resolved.Fields() {
			value, err := item.Get(spec.Name)
			if err != nil {
				fields[AttrName(spec.Name)] = nil
				continue
			}
			fields[AttrName(spec.Name)] = value
		}
		fixtures = append(fixtures, fixture{Model: modelName, PK: record.Key, Fields: fields})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(fixtures); err != nil {
		return fmt.Errorf("failed to write fixtures: %w", err)
	}
	return nil
}

// CamelCase turns a hyphenated register or field name into a Django class
// name, e.g. "local-authority-eng" becomes "LocalAuthorityEng".
func CamelCase(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(strings.ToLower(name), "-")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// AttrName turns a hyphenated field name into a Python attribute name.
func AttrName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// pyStr renders a Python single-quoted string literal.
func pyStr(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
