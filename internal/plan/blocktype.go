package plan

// BlockType discriminates the shape of a segment.
type BlockType string

const (
	BlockVitesse BlockType = "vitesse"
	BlockCotes   BlockType = "cotes"
	BlockPPG     BlockType = "ppg"
	BlockMuscu   BlockType = "muscu"
	BlockRecup   BlockType = "recup"
	BlockStart   BlockType = "start"
	BlockCustom  BlockType = "custom"
)

// BlockTypeEntry is one entry of the block-type catalog, used to populate
// selection UIs and to order grouped displays.
type BlockTypeEntry struct {
	Type  BlockType `json:"type"`
	Label string    `json:"label"`
}

// blockCatalog is the static ordered catalog of block types.
var blockCatalog = []BlockTypeEntry{
	{BlockVitesse, "Vitesse"},
	{BlockCotes, "Côtes"},
	{BlockPPG, "PPG"},
	{BlockMuscu, "Musculation"},
	{BlockRecup, "Récupération"},
	{BlockStart, "Départs"},
	{BlockCustom, "Personnalisé"},
}

// BlockCatalog returns the ordered block-type catalog. The returned slice is a
// copy; callers may reorder it freely.
func BlockCatalog() []BlockTypeEntry {
	out := make([]BlockTypeEntry, len(blockCatalog))
	copy(out, blockCatalog)
	return out
}

// NormalizeBlockType maps any block type outside the catalog to BlockVitesse.
// Data written by older app versions may carry retired type tags; they are
// treated as plain distance blocks rather than rejected.
func NormalizeBlockType(t BlockType) BlockType {
	for _, e := range blockCatalog {
		if e.Type == t {
			return t
		}
	}
	return BlockVitesse
}

// BlockTypeLabel returns the display label for a block type, after
// normalization.
func BlockTypeLabel(t BlockType) string {
	t = NormalizeBlockType(t)
	for _, e := range blockCatalog {
		if e.Type == t {
			return e.Label
		}
	}
	return ""
}
