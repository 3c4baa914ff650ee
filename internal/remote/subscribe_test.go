package remote

import "testing"

func TestChangeEventAffectsCatalog(t *testing.T) {
	tests := []struct {
		name  string
		event ChangeEvent
		want  bool
	}{
		{"insert public", ChangeEvent{Op: "INSERT", IsPublic: true}, true},
		{"insert private", ChangeEvent{Op: "INSERT", IsPublic: false}, false},
		{"publish", ChangeEvent{Op: "UPDATE", IsPublic: true, OldIsPublic: false}, true},
		{"unpublish", ChangeEvent{Op: "UPDATE", IsPublic: false, OldIsPublic: true}, true},
		{"public metadata edit", ChangeEvent{Op: "UPDATE", IsPublic: true, OldIsPublic: true}, false},
		{"private metadata edit", ChangeEvent{Op: "UPDATE", IsPublic: false, OldIsPublic: false}, false},
		{"delete public", ChangeEvent{Op: "DELETE", IsPublic: true}, true},
		{"delete private", ChangeEvent{Op: "DELETE", IsPublic: false}, false},
		{"unknown op", ChangeEvent{Op: "TRUNCATE", IsPublic: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.AffectsCatalog(); got != tt.want {
				t.Errorf("AffectsCatalog() = %v, want %v", got, tt.want)
			}
		})
	}
}
