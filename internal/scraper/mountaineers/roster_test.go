package mountaineers

import (
	"testing"
)

func TestParseRosterFullEntry(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `<html><body>
		<div class="roster-contact">
			<a class="contact-modal" href="/members/jane-doe">
				<img src="/personal-images/jane.jpg" alt="Jane Doe" />
			</a>
			<div class="roster-name">Jane Doe</div>
			<div class="roster-position">Leader</div>
		</div>
	</body></html>`)

	entries := ParseRoster(doc, testBase)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Name != "Jane Doe" {
		t.Errorf("Name = %q", e.Name)
	}
	if e.ProfileURL == nil || *e.ProfileURL != testBase+"/members/jane-doe" {
		t.Errorf("ProfileURL = %v", e.ProfileURL)
	}
	if e.Role == nil || *e.Role != "Leader" {
		t.Errorf("Role = %v", e.Role)
	}
	if e.Avatar == nil || *e.Avatar != "/personal-images/jane.jpg" {
		t.Errorf("Avatar = %v, src must be kept verbatim", e.Avatar)
	}
}

func TestParseRosterNameDefaultsToUnknown(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `<html><body>
		<div class="roster-contact">
			<div class="roster-position">Participant</div>
		</div>
	</body></html>`)

	entries := ParseRoster(doc, testBase)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "Unknown" {
		t.Errorf("Name = %q, want the literal Unknown default", entries[0].Name)
	}
	if entries[0].ProfileURL != nil {
		t.Errorf("ProfileURL = %v, want nil", entries[0].ProfileURL)
	}
	if entries[0].Avatar != nil {
		t.Errorf("Avatar = %v, want nil", entries[0].Avatar)
	}
}

func TestParseRosterNameSelectorPriority(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "Dedicated roster-name class",
			html: `<div class="roster-contact"><div class="roster-name">Roster Name</div><a href="/members/x">Anchor Name</a></div>`,
			want: "Roster Name",
		},
		{
			name: "Alternate contact-name class",
			html: `<div class="roster-contact"><div class="contact-name">Contact Name</div></div>`,
			want: "Contact Name",
		},
		{
			name: "Anchor text fallback",
			html: `<div class="roster-contact"><a href="/members/x">Anchor Name</a></div>`,
			want: "Anchor Name",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			entries := ParseRoster(mustDoc(t, "<html><body>"+tt.html+"</body></html>"), testBase)
			if len(entries) != 1 {
				t.Fatalf("Expected 1 entry, got %d", len(entries))
			}
			if entries[0].Name != tt.want {
				t.Errorf("Name = %q, want %q", entries[0].Name, tt.want)
			}
		})
	}
}

func TestParseRosterKeepsDOMOrder(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `<html><body>
		<div class="roster-contact"><div class="roster-name">Zed</div></div>
		<div class="roster-contact"><div class="roster-name">Amy</div></div>
		<div class="roster-contact"><div class="roster-name">Zed</div></div>
	</body></html>`)

	entries := ParseRoster(doc, testBase)
	want := []string{"Zed", "Amy", "Zed"}
	if len(entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].Name != w {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, w)
		}
	}
}

func TestParseRosterAbsoluteProfileURL(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `<html><body>
		<div class="roster-contact">
			<a href="https://www.mountaineers.org/members/jane-doe">Jane Doe</a>
		</div>
	</body></html>`)

	entries := ParseRoster(doc, testBase)
	if entries[0].ProfileURL == nil || *entries[0].ProfileURL != "https://www.mountaineers.org/members/jane-doe" {
		t.Errorf("ProfileURL = %v", entries[0].ProfileURL)
	}
}

func TestParseRosterEmptyFragment(t *testing.T) {
	t.Parallel()
	entries := ParseRoster(mustDoc(t, "<html><body></body></html>"), testBase)
	if entries == nil {
		t.Error("Entries should be an empty slice, not nil")
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}
}
