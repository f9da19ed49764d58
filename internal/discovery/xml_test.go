package discovery

import (
	"strings"
	"testing"
)

const plainDoc = `<?xml version="1.0"?>
<root>
  <device>
    <manufacturer>Bose Corporation</manufacturer>
    <friendlyName>Living Room</friendlyName>
    <modelName>SoundTouch 20</modelName>
    <serialNumber>9884e3ab1234</serialNumber>
  </device>
</root>`

const namespacedDoc = `<?xml version="1.0"?>
<root xmlns="urn:schemas-upnp-org:device-1-0">
  <device>
    <manufacturer>Bose Corporation</manufacturer>
    <friendlyName>Living Room</friendlyName>
    <modelName>SoundTouch 20</modelName>
    <serialNumber>9884e3ab1234</serialNumber>
  </device>
</root>`

func TestFindText_NamespaceAgnostic(t *testing.T) {
	// The same logical element must yield identical text whether or not
	// the document declares a default namespace
	for _, doc := range []struct {
		name string
		body string
	}{
		{"plain", plainDoc},
		{"namespaced", namespacedDoc},
	} {
		t.Run(doc.name, func(t *testing.T) {
			root, err := parseXML(strings.NewReader(doc.body))
			if err != nil {
				t.Fatalf("parseXML() error = %v", err)
			}

			tests := map[string]string{
				"manufacturer": "Bose Corporation",
				"friendlyName": "Living Room",
				"modelName":    "SoundTouch 20",
				"serialNumber": "9884e3ab1234",
			}
			for local, want := range tests {
				if got := findText(root, local); got != want {
					t.Errorf("findText(%q) = %q, want %q", local, got, want)
				}
			}
		})
	}
}

func TestFindText_Absent(t *testing.T) {
	doc := `<root xmlns="urn:schemas-upnp-org:device-1-0">
  <device>
    <friendlyName>Living Room</friendlyName>
    <serialNumber>   </serialNumber>
  </device>
</root>`

	root, err := parseXML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parseXML() error = %v", err)
	}

	// Missing element and whitespace-only element are indistinguishable
	if got := findText(root, "manufacturer"); got != "" {
		t.Errorf("findText(missing) = %q, want \"\"", got)
	}
	if got := findText(root, "serialNumber"); got != "" {
		t.Errorf("findText(whitespace) = %q, want \"\"", got)
	}
}

func TestParseXML_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"truncated", `<root><device><friendlyName>Living`},
		{"not xml", `{"friendlyName": "Living Room"}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseXML(strings.NewReader(tt.body)); err == nil {
				t.Error("parseXML() should fail on malformed input")
			}
		})
	}
}
