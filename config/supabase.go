package config

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabase initializes the Supabase client the gateway and the auth
// handlers share. The anon key is enough: every record access is scoped
// by the signed-in user.
func NewSupabase(cfg Config) (*supa.Client, error) {
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize Supabase client: %w", err)
	}
	return client, nil
}
