package validation

import "testing"

func TestValidateUsernameAvailable(t *testing.T) {
	for _, name := range []string{"me", "metrics", "profiles", "Admin", "LOGIN"} {
		if err := ValidateUsernameAvailable(name); err == nil {
			t.Errorf("expected %q to be reserved", name)
		}
	}
	for _, name := range []string{"ada", "grace", "river_99"} {
		if err := ValidateUsernameAvailable(name); err != nil {
			t.Errorf("expected %q to be allowed, got %v", name, err)
		}
	}
}

func TestValidateUsernameRejectsReserved(t *testing.T) {
	if err := ValidateUsername("metrics"); err == nil {
		t.Fatal("expected reserved username to fail validation")
	}
}
