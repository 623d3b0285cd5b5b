package i18n

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Data is passed to message templates.
type Data map[string]string

// Service translates message keys using the bundle files found in config.I18n.BundleDirAbs.
type Service struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
}

func New(cfg config.Server) (*Service, error) {
	defaultLang, err := language.Parse(cfg.I18n.DefaultLanguage)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid default language %q", cfg.I18n.DefaultLanguage)
	}

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := os.ReadDir(cfg.I18n.BundleDirAbs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read i18n bundle dir %s", cfg.I18n.BundleDirAbs)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".toml" {
			continue
		}

		if _, err := bundle.LoadMessageFile(filepath.Join(cfg.I18n.BundleDirAbs, file.Name())); err != nil {
			return nil, errors.Wrapf(err, "failed to load i18n file %s", file.Name())
		}
	}

	return &Service{
		bundle:  bundle,
		matcher: language.NewMatcher(bundle.LanguageTags()),
	}, nil
}

// Translate returns the message for key in lang. Missing keys yield the key itself.
func (s *Service) Translate(key string, lang language.Tag, data ...Data) string {
	localizer := i18n.NewLocalizer(s.bundle, lang.String())

	var templateData Data
	if len(data) > 0 {
		templateData = data[0]
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Str("lang", lang.String()).Msg("Translation missing, returning key")
		return key
	}

	return msg
}

// ParseAcceptLanguage picks the best supported language for an Accept-Language header value.
func (s *Service) ParseAcceptLanguage(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(s.matcher, acceptLanguage)
	base, _ := tag.Base()

	return language.Make(base.String())
}

// Tags lists the supported languages, default first.
func (s *Service) Tags() []language.Tag {
	return s.bundle.LanguageTags()
}
