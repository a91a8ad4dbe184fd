package domain

import "testing"

func TestNew_Defaults(t *testing.T) {
	s := New()
	if s.CurrentUser != "Administrator" || s.IsAuthenticated || s.TicketsSubmitted != 0 || s.ID != "" {
		t.Errorf("New() = %+v, want defaults", s)
	}
}
