package recipe

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultNamespace is assumed for identifiers written without one.
const DefaultNamespace = "minecraft"

// Well-known identifiers the registry and browsing session special-case.
const (
	CraftingTable = "minecraft:crafting_table"
	Furnace       = "minecraft:furnace"
	BlastFurnace  = "minecraft:blast_furnace"
	Smoker        = "minecraft:smoker"
	Campfire      = "minecraft:campfire"
	Stonecutter   = "minecraft:stonecutter"
	BrewingStand  = "minecraft:brewing_stand"
	SmithingTable = "minecraft:smithing_table"
	BlazePowder   = "minecraft:blaze_powder"
	WaterBucket   = "minecraft:water_bucket"
	WetSponge     = "minecraft:wet_sponge"
	Sponge        = "minecraft:sponge"
)

// SplitID splits "namespace:name" into its parts, defaulting the namespace.
// More than one ':' is an error.
func SplitID(id string) (namespace, name string, err error) {
	parts := strings.Split(id, ":")
	switch len(parts) {
	case 1:
		return DefaultNamespace, parts[0], nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("identifier %q: expected namespace:name", id)
	}
}

// CanonicalID adds the default namespace to an item identifier written
// without one. Identifiers that already carry a namespace are unchanged.
func CanonicalID(id string) string {
	if id == "" || strings.Contains(id, ":") {
		return id
	}
	return DefaultNamespace + ":" + id
}

// LocalName strips the namespace from id.
func LocalName(id string) string {
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Canonical turns a loose query ("Oak Planks", "oak_planks") into a canonical
// item identifier ("minecraft:oak_planks"). Potion and tipped arrow queries
// carry their own encoding and are returned unchanged.
func Canonical(query string) string {
	if strings.Contains(query, "potion") || strings.Contains(query, "tipped_arrow") {
		return query
	}
	q := cases.Fold().String(strings.TrimSpace(query))
	q = strings.Join(strings.Fields(q), "_")
	if q == "" {
		return ""
	}
	if !strings.Contains(q, ":") {
		q = DefaultNamespace + ":" + q
	}
	return q
}
