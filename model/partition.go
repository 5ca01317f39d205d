package model

// ContentBlock is a heading paragraph plus the content that follows it up to,
// but not including, the next heading. Fragments[0] is always the heading's
// verbatim markup.
type ContentBlock struct {
	Title     string
	Fragments []string
}

// Len returns the number of fragments in the block.
func (b *ContentBlock) Len() int {
	return len(b.Fragments)
}

// Partition maps heading text to its content block.
//
// When two headings share identical text, the block of the later heading
// replaces the earlier one. Order lists each distinct title once, at the
// position where it was first seen.
type Partition struct {
	blocks map[string]*ContentBlock
	order  []string

	// Dropped counts body elements that appeared before the first heading.
	Dropped int

	// Trailer is the body's final section properties, if present.
	Trailer string
}

// NewPartition creates an empty partition
func NewPartition() *Partition {
	return &Partition{
		blocks: make(map[string]*ContentBlock),
	}
}

// Put stores a block under its title, overwriting any earlier block with the
// same title.
func (p *Partition) Put(block *ContentBlock) {
	if _, exists := p.blocks[block.Title]; !exists {
		p.order = append(p.order, block.Title)
	}
	p.blocks[block.Title] = block
}

// Get returns the block stored under title.
func (p *Partition) Get(title string) (*ContentBlock, bool) {
	b, ok := p.blocks[title]
	return b, ok
}

// Titles returns the distinct titles in first-seen order.
func (p *Partition) Titles() []string {
	return append([]string(nil), p.order...)
}

// Len returns the number of distinct titles.
func (p *Partition) Len() int {
	return len(p.blocks)
}
