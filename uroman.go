// Package uroman is a rule- and context-driven transliteration engine that
// converts text in any script to a Latin-alphabet romanization.
package uroman

import (
	"bytes"
	"os"

	"github.com/rs/zerolog"

	"github.com/uroman-go/uroman/internal/algo"
	"github.com/uroman-go/uroman/internal/engine"
	"github.com/uroman-go/uroman/internal/numdb"
	"github.com/uroman-go/uroman/internal/resource"
	"github.com/uroman-go/uroman/internal/rule"
	"github.com/uroman-go/uroman/internal/scriptdb"
	"github.com/uroman-go/uroman/internal/uchar"
)

// RomFormat selects the shape of RomanizeString's return value.
type RomFormat int

const (
	FormatSTR RomFormat = iota
	FormatEdges
	FormatAlts
	FormatLattice
)

// Uroman is a loaded romanization engine: immutable rule/script/number
// stores plus a shared token cache, safe for concurrent use by multiple
// goroutines once Load returns.
type Uroman struct {
	stores *engine.Stores
	cache  *engine.TokenCache
	log    zerolog.Logger
	opts   options
}

type options struct {
	cacheSize int
	noCap     bool // ablation flag: disable multi-uppercase normalization
}

// Option configures Load.
type Option func(*options)

// WithCacheSize sets the per-token cache capacity; 0 disables caching.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithNoCapitalization disables multi-uppercase normalization in the
// expansion pass.
func WithNoCapitalization() Option {
	return func(o *options) { o.noCap = true }
}

// Load reads the bundled resource files and builds an immutable Uroman
// instance. Resource loading never fails fatally: a malformed or missing
// file is logged to standard error and the load continues with whatever
// data parsed successfully.
func Load(opts ...Option) (*Uroman, error) {
	cfg := options{cacheSize: 65536}
	for _, o := range opts {
		o(&cfg)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()

	ruleStore := rule.NewStore()
	scriptStore := scriptdb.NewStore()
	numStore := numdb.NewStore()
	decompTable := uchar.NewDecompTable()
	names := uchar.NewNameTable()
	signs := uchar.NewCharSigns()

	load := func(name string, fn func([]byte)) {
		data, err := resource.Default.ReadFile(name)
		if err != nil {
			log.Error().Str("file", name).Err(err).Msg("could not load resource file, continuing with partial data")
			return
		}
		fn(data)
	}

	load(resource.FileScripts, func(b []byte) {
		resource.LoadScripts(bytes.NewReader(b), scriptStore, log, resource.FileScripts)
	})
	load(resource.FileUnicodeProps, func(b []byte) {
		resource.LoadUnicodeProps(bytes.NewReader(b), resource.PropsSink{
			SetScript:    scriptStore.SetCharScript,
			SetVowelSign: signs.SetVowelSign,
			SetMedial:    signs.SetMedial,
			SetVirama:    signs.SetVirama,
		}, log, resource.FileUnicodeProps)
	})
	load(resource.FileUnicodeOverwrite, func(b []byte) {
		resource.LoadUnicodeOverwrite(bytes.NewReader(b), ruleStore, names, log, resource.FileUnicodeOverwrite)
	})
	load(resource.FileUnicodeDecomp, func(b []byte) {
		resource.LoadUnicodeDataDecomp(bytes.NewReader(b), decompTable, log, resource.FileUnicodeDecomp)
	})
	load(resource.FileNumProps, func(b []byte) {
		resource.LoadNumProps(bytes.NewReader(b), numStore, log, resource.FileNumProps)
	})
	// Pinyin loads before the manual table. rule.Store.Insert replaces only
	// auto-derived and overwrite entries, so a manual entry for the same Han
	// character is appended after the pinyin rule, and on equal restriction
	// counts rule.Select keeps the pinyin rule.
	load(resource.FileChinesePinyin, func(b []byte) {
		resource.LoadChinesePinyin(bytes.NewReader(b), ruleStore, log, resource.FileChinesePinyin)
	})
	load(resource.FileRomAutoTable, func(b []byte) {
		resource.LoadRomTable(bytes.NewReader(b), ruleStore, rule.ProvenanceAutoDerived, log, resource.FileRomAutoTable)
	})
	load(resource.FileRomTable, func(b []byte) {
		resource.LoadRomTable(bytes.NewReader(b), ruleStore, rule.ProvenanceManual, log, resource.FileRomTable)
	})
	ruleStore.InsertThaiAutoCancelRules()

	u := &Uroman{
		stores: &engine.Stores{
			Rules:   ruleStore,
			Scripts: scriptStore,
			Numbers: numStore,
			Decomp:  decompTable,
			Names:   names,
			Signs:   signs,
			Abugida: algo.NewAbugidaCache(),

			NoCapitalization: cfg.noCap,
		},
		cache: engine.NewTokenCache(cfg.cacheSize),
		log:   log,
		opts:  cfg,
	}
	return u, nil
}

