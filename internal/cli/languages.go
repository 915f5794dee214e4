package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"codeberg.org/snonux/cropvoice/internal/language"
)

// LanguageTable returns the language table from the "languages" config key,
// or the built-in table when none is configured
func LanguageTable() (*language.Table, error) {
	if !viper.IsSet("languages") {
		return language.DefaultTable(), nil
	}

	var langs []language.Language
	if err := viper.UnmarshalKey("languages", &langs); err != nil {
		return nil, fmt.Errorf("invalid languages configuration: %w", err)
	}
	return language.NewTable(langs)
}
