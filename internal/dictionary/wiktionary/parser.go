package wiktionary

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/at-ishikawa/lookword/internal/dictionary"
)

const language = "English"

// relationHeadings maps section titles (lowercase) to relationship types.
var relationHeadings = map[string]string{
	"synonyms":         "synonyms",
	"antonyms":         "antonyms",
	"hypernyms":        "hypernyms",
	"hyponyms":         "hyponyms",
	"meronyms":         "meronyms",
	"holonyms":         "holonyms",
	"troponyms":        "troponyms",
	"coordinate terms": "coordinate terms",
	"derived terms":    "derived terms",
	"related terms":    "related terms",
}

// nymClasses maps the classes of inline "Synonyms: ..." lines under a sense.
var nymClasses = []struct {
	class            string
	relationshipType string
}{
	{class: "synonym", relationshipType: "synonyms"},
	{class: "antonym", relationshipType: "antonyms"},
	{class: "hypernym", relationshipType: "hypernyms"},
	{class: "hyponym", relationshipType: "hyponyms"},
}

type section int

const (
	sectionOther section = iota
	sectionEtymology
	sectionPronunciation
	sectionDefinition
	sectionRelation
)

type heading struct {
	level int
	title string
}

type parser struct {
	candidates []*dictionary.Entry
	current    *dictionary.Entry
	// pronunciations listed before the first etymology apply to every candidate
	shared   dictionary.Pronunciations
	section  section
	relation string
}

// Parse extracts the English entries from a rendered Wiktionary page. Each
// "Etymology N" section starts a new candidate.
func Parse(r io.Reader) ([]dictionary.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader > %w", err)
	}

	root := doc.Find(".mw-parser-output").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	p := &parser{
		shared: dictionary.Pronunciations{Audio: []string{}, Text: []string{}},
	}
	inLanguage := false
	root.Children().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if h, ok := headingOf(sel); ok {
			if h.level == 2 {
				if inLanguage {
					return false
				}
				inLanguage = h.title == language
				return true
			}
			if inLanguage {
				p.enterSection(h)
			}
			return true
		}
		if inLanguage {
			p.content(sel)
		}
		return true
	})
	return p.result(), nil
}

func headingOf(sel *goquery.Selection) (heading, bool) {
	node := sel.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return heading{}, false
	}

	if node.Data == "div" && sel.HasClass("mw-heading") {
		inner := sel.ChildrenFiltered("h2, h3, h4, h5, h6").First()
		if inner.Length() == 0 {
			return heading{}, false
		}
		return headingOf(inner)
	}

	switch node.Data {
	case "h2", "h3", "h4", "h5", "h6":
		level := int(node.Data[1] - '0')
		return heading{level: level, title: headingTitle(sel)}, true
	}
	return heading{}, false
}

func headingTitle(sel *goquery.Selection) string {
	if headline := sel.Find(".mw-headline").First(); headline.Length() > 0 {
		return cleanText(headline.Text())
	}
	clone := sel.Clone()
	clone.Find(".mw-editsection").Remove()
	return cleanText(clone.Text())
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ownText returns the text of sel without its nested lists.
func ownText(sel *goquery.Selection, exclude string) string {
	clone := sel.Clone()
	clone.Find(exclude).Remove()
	return cleanText(clone.Text())
}

func newEntry() *dictionary.Entry {
	return &dictionary.Entry{
		Pronunciations: dictionary.Pronunciations{Audio: []string{}, Text: []string{}},
		Definitions:    []dictionary.Definition{},
	}
}

func (p *parser) startCandidate() {
	p.current = newEntry()
	p.candidates = append(p.candidates, p.current)
}

func (p *parser) ensureCandidate() {
	if p.current == nil {
		p.startCandidate()
	}
}

func (p *parser) lastDefinition() *dictionary.Definition {
	if p.current == nil || len(p.current.Definitions) == 0 {
		return nil
	}
	return &p.current.Definitions[len(p.current.Definitions)-1]
}

func (p *parser) enterSection(h heading) {
	title := strings.ToLower(h.title)

	if strings.HasPrefix(title, "etymology") {
		if p.current == nil || p.current.Etymology != "" || len(p.current.Definitions) > 0 {
			p.startCandidate()
		}
		p.section = sectionEtymology
		return
	}
	if title == "pronunciation" {
		p.section = sectionPronunciation
		return
	}
	if pos, ok := dictionary.ParsePartOfSpeech(title); ok {
		p.ensureCandidate()
		p.current.Definitions = append(p.current.Definitions, dictionary.Definition{
			PartOfSpeech: string(pos),
			Text:         []string{},
			RelatedWords: []dictionary.RelatedGroup{},
			Examples:     []string{},
		})
		p.section = sectionDefinition
		return
	}
	if relationshipType, ok := relationHeadings[title]; ok {
		if p.lastDefinition() == nil {
			p.section = sectionOther
			return
		}
		p.relation = relationshipType
		p.section = sectionRelation
		return
	}
	p.section = sectionOther
}

func (p *parser) content(sel *goquery.Selection) {
	switch p.section {
	case sectionEtymology:
		if !sel.Is("p") {
			return
		}
		text := cleanText(sel.Text())
		if text == "" {
			return
		}
		if p.current.Etymology != "" {
			p.current.Etymology += " "
		}
		p.current.Etymology += text
	case sectionPronunciation:
		p.pronunciation(sel)
	case sectionDefinition:
		if !sel.Is("ol") {
			return
		}
		definition := p.lastDefinition()
		sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			addSense(definition, li)
		})
	case sectionRelation:
		if !sel.Is("ul") {
			return
		}
		words := []string{}
		sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if word := ownText(li, "ul, ol"); word != "" {
				words = append(words, word)
			}
		})
		addRelated(p.lastDefinition(), p.relation, words)
	}
}

func (p *parser) pronunciation(sel *goquery.Selection) {
	target := &p.shared
	if p.current != nil {
		target = &p.current.Pronunciations
	}

	sel.Find("audio").Each(func(_ int, audio *goquery.Selection) {
		if src, ok := audio.Find("source[src]").First().Attr("src"); ok && src != "" {
			target.Audio = append(target.Audio, src)
		}
	})
	if !sel.Is("ul") {
		return
	}
	sel.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := ownText(li, "ul, ol, audio, table, .audiotable")
		text = strings.ReplaceAll(text, "IPA(key):", "IPA:")
		if text != "" {
			target.Text = append(target.Text, text)
		}
	})
}

// addSense appends li as a sense and its nested senses after it.
func addSense(definition *dictionary.Definition, li *goquery.Selection) {
	if text := ownText(li, "ol, ul, dl, .h-usage-example"); text != "" {
		definition.Text = append(definition.Text, text)
	}

	li.ChildrenFiltered("dl").Children().Each(func(_ int, dd *goquery.Selection) {
		if !dd.Is("dd") {
			return
		}
		if nyms := dd.Find(".nyms").First(); nyms.Length() > 0 {
			addNyms(definition, nyms)
			return
		}
		if text := ownText(dd, "ul, ol, dl"); text != "" {
			definition.Examples = append(definition.Examples, text)
		}
	})
	li.ChildrenFiltered("ol").ChildrenFiltered("li").Each(func(_ int, nested *goquery.Selection) {
		addSense(definition, nested)
	})
}

func addNyms(definition *dictionary.Definition, nyms *goquery.Selection) {
	relationshipType := ""
	for _, nc := range nymClasses {
		if nyms.HasClass(nc.class) {
			relationshipType = nc.relationshipType
			break
		}
	}
	if relationshipType == "" {
		return
	}

	words := []string{}
	nyms.Find("span[lang]").Each(func(_ int, word *goquery.Selection) {
		if text := cleanText(word.Text()); text != "" {
			words = append(words, text)
		}
	})
	addRelated(definition, relationshipType, words)
}

// addRelated merges words into the group of the same relationship type.
func addRelated(definition *dictionary.Definition, relationshipType string, words []string) {
	if len(words) == 0 {
		return
	}
	for i := range definition.RelatedWords {
		if definition.RelatedWords[i].RelationshipType == relationshipType {
			definition.RelatedWords[i].Words = append(definition.RelatedWords[i].Words, words...)
			return
		}
	}
	definition.RelatedWords = append(definition.RelatedWords, dictionary.RelatedGroup{
		RelationshipType: relationshipType,
		Words:            words,
	})
}

func (p *parser) result() []dictionary.Entry {
	if len(p.candidates) == 0 {
		if len(p.shared.Audio) == 0 && len(p.shared.Text) == 0 {
			return nil
		}
		return []dictionary.Entry{{
			Pronunciations: p.shared,
			Definitions:    []dictionary.Definition{},
		}}
	}

	entries := make([]dictionary.Entry, 0, len(p.candidates))
	for _, candidate := range p.candidates {
		entry := *candidate
		if len(entry.Pronunciations.Audio) == 0 && len(entry.Pronunciations.Text) == 0 {
			entry.Pronunciations = dictionary.Pronunciations{
				Audio: append([]string{}, p.shared.Audio...),
				Text:  append([]string{}, p.shared.Text...),
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
