package pipeline

import (
	"fmt"

	"github.com/ppiankov/refdocs/internal/extract"
	"github.com/ppiankov/refdocs/internal/markdown"
	"github.com/ppiankov/refdocs/internal/model"
)

func (p *Pipeline) constantsDocument(res *Result) (*markdown.Document, error) {
	cfg := p.config.Constants
	doc := &markdown.Document{
		Title:     "Protocol Constants",
		Generator: generator(KindConstants),
		Intro:     []string{fmt.Sprintf("Bitcoin protocol constants extracted from `%s` source code.", cfg.Component)},
	}

	src, found, err := p.load(cfg.Source)
	if err != nil || !found {
		return doc, err
	}

	ex := extract.NewConstantExtractor()
	facts := ex.Extract(src)
	res.Count = len(facts)
	if len(facts) == 0 {
		return doc, nil
	}

	for _, g := range markdown.GroupFacts(facts, ex.Classifier().Order()) {
		table := &markdown.Table{Headers: []string{"Constant", "Type", "Value", "Description"}}
		for _, f := range g.Facts {
			table.AddRow(markdown.Code(f.Name), markdown.Code(f.KindTag), f.NormalizedValue, f.Description)
		}
		doc.Sections = append(doc.Sections, markdown.Section{Title: g.Label, Table: table})
	}
	doc.Footer = []string{markdown.SourceLink(cfg.Source)}
	return doc, nil
}

func (p *Pipeline) defaultsDocument(res *Result) (*markdown.Document, error) {
	cfg := p.config.Defaults
	doc := &markdown.Document{
		Title:     "Configuration Defaults",
		Generator: generator(KindDefaults),
	}

	ex := extract.NewDefaultsExtractor(cfg.Prefix, cfg.Skip)
	for _, source := range cfg.Sources {
		src, found, err := p.load(source.Path)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		facts := ex.Extract(src)
		res.Count += len(facts)
		if len(facts) == 0 {
			continue
		}

		section := markdown.Section{
			Title:  source.Title + " Defaults",
			Footer: []string{markdown.SourceLink(source.Path)},
		}
		if source.Grouped {
			for _, g := range markdown.GroupFacts(facts, ex.Classifier().Order()) {
				section.Children = append(section.Children, markdown.Section{
					Level: 3,
					Title: g.Label + " Configuration",
					Table: defaultsTable(g.Facts),
				})
			}
		} else {
			markdown.SortFacts(facts)
			section.Table = defaultsTable(facts)
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func defaultsTable(facts []model.Fact) *markdown.Table {
	table := &markdown.Table{Headers: []string{"Setting", "Default Value", "Source"}}
	for _, f := range facts {
		table.AddRow(markdown.Code(f.Name), f.NormalizedValue, markdown.Code(f.Source+"()"))
	}
	return table
}

func (p *Pipeline) errorsDocument(res *Result) (*markdown.Document, error) {
	cfg := p.config.Errors
	doc := &markdown.Document{
		Title:     "Error Codes",
		Generator: generator(KindErrors),
		Intro:     []string{fmt.Sprintf("Error codes used across %s components.", p.config.Version.Product)},
	}

	src, found, err := p.load(cfg.RPC.Source)
	if err != nil {
		return nil, err
	}
	if found {
		codes := extract.NewErrorCodeExtractor(cfg.RPC.Enum, cfg.RPC.Skip).Extract(src)
		res.Diagnostics = append(res.Diagnostics, codes.Diagnostics...)

		table := &markdown.Table{Headers: []string{"Code", "Variant", "Message", "Description"}}
		rows := append(extract.StandardRPCErrors(), extract.CompatRPCErrors()...)
		rows = append(rows, codes.Entries...)
		for _, e := range rows {
			message := ""
			if e.Message != "" {
				message = markdown.Quote(e.Message)
			}
			table.AddRow(e.CodeText(), markdown.Code(e.Name), message, e.Description)
		}
		res.Count += len(rows)

		doc.Sections = append(doc.Sections, markdown.Section{
			Title:  "RPC Error Codes",
			Intro:  []string{fmt.Sprintf("JSON-RPC 2.0 compatible error codes used by `%s`.", component(cfg.RPC.Source))},
			Table:  table,
			Footer: []string{markdown.SourceLink(cfg.RPC.Source)},
		})
	}

	src, found, err = p.load(cfg.Consensus.Source)
	if err != nil {
		return nil, err
	}
	if !found {
		return doc, nil
	}
	facts, ok := extract.NewConsensusErrorExtractor(cfg.Consensus.Enum).Extract(src)
	if !ok || len(facts) == 0 {
		return doc, nil
	}
	table := &markdown.Table{Headers: []string{"Variant", "Description"}}
	for _, f := range facts {
		table.AddRow(markdown.Code(f.Name), f.Description)
	}
	res.Count += len(facts)
	doc.Sections = append(doc.Sections, markdown.Section{
		Title:  "Consensus Errors",
		Intro:  []string{fmt.Sprintf("Error types used by `%s` for validation failures.", component(cfg.Consensus.Source))},
		Table:  table,
		Footer: []string{markdown.SourceLink(cfg.Consensus.Source)},
	})
	return doc, nil
}

func (p *Pipeline) rpcDocument(res *Result) (*markdown.Document, error) {
	cfg := p.config.RPC
	doc := &markdown.Document{
		Title:     "RPC Methods",
		Generator: generator(KindRPC),
		Intro: []string{
			fmt.Sprintf("Complete list of available JSON-RPC 2.0 methods in `%s`.", component(cfg.Source)),
			fmt.Sprintf("For detailed method documentation, see [RPC Reference](%s).", cfg.Reference),
		},
	}

	src, found, err := p.load(cfg.Source)
	if err != nil || !found {
		return doc, err
	}
	ex := extract.NewRPCMethodExtractor(cfg.Array)
	facts, ok := ex.Extract(src)
	if !ok || len(facts) == 0 {
		return doc, nil
	}
	res.Count = len(facts)

	for _, g := range markdown.GroupFacts(facts, ex.Classifier().Order()) {
		table := &markdown.Table{Headers: []string{"Method"}}
		for _, f := range g.Facts {
			table.AddRow(markdown.Code(f.Name))
		}
		doc.Sections = append(doc.Sections, markdown.Section{
			Title: fmt.Sprintf("%s (%d methods)", g.Label, len(g.Facts)),
			Table: table,
		})
	}
	doc.Footer = []string{
		fmt.Sprintf("**Total: %d methods**", len(facts)),
		markdown.SourceLink(cfg.Source),
		fmt.Sprintf("[Full RPC Reference](%s)", cfg.Reference),
	}
	return doc, nil
}
