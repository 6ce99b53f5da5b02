// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// AssetManager builds and caches the procedural sprites used by the
// scene: the player ship, destructible bodies in each visual state,
// and torpedoes in flight.
type AssetManager struct {
	shipSprite common.Drawable

	// Body sprites keyed by the body snapshot state string
	bodySprites map[string]common.Drawable

	torpedoSprite     common.Drawable
	backgroundTexture common.Drawable
}

// NewAssetManager creates an empty asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		bodySprites: make(map[string]common.Drawable),
	}
}

// LoadAssets generates all sprites. Must run on the main thread after
// the GL context exists.
func (am *AssetManager) LoadAssets() error {
	am.loadShipSprite()
	am.loadBodySprites()
	am.loadTorpedoSprite()
	am.loadBackground()
	return nil
}

// loadShipSprite creates the arrowhead sprite for the player ship
func (am *AssetManager) loadShipSprite() {
	am.shipSprite = am.createSprite(16, 16, [][]int{
		{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 0, 1, 1, 0, 1, 1, 1, 1, 1, 1, 0, 1, 1, 0, 0},
		{0, 1, 1, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 1, 1, 0},
		{0, 1, 1, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 1, 1, 0},
		{1, 1, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 1, 1},
		{1, 1, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 1, 1},
	})
}

// loadBodySprites creates one sprite per body visual state
func (am *AssetManager) loadBodySprites() {
	solid := [][]int{
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	}

	burst := [][]int{
		{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1},
		{0, 1, 0, 0, 0, 1, 1, 0, 0, 0, 1, 0},
		{0, 0, 1, 0, 1, 1, 1, 1, 0, 1, 0, 0},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{0, 0, 1, 0, 1, 1, 1, 1, 0, 1, 0, 0},
		{0, 1, 0, 0, 0, 1, 1, 0, 0, 0, 1, 0},
		{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1},
	}

	scatter := [][]int{
		{0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0},
		{0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1},
		{0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0},
	}

	ring := [][]int{
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0},
		{0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0},
		{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
		{0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0},
		{0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	}

	for _, state := range []string{"healthy", "damaged", "critical"} {
		am.bodySprites[state] = am.createSprite(12, 12, solid)
	}
	am.bodySprites["exploding"] = am.createSprite(12, 12, burst)
	am.bodySprites["debris"] = am.createSprite(12, 12, scatter)
	am.bodySprites["respawning"] = am.createSprite(12, 12, ring)
}

// loadTorpedoSprite creates the in-flight torpedo sprite
func (am *AssetManager) loadTorpedoSprite() {
	am.torpedoSprite = am.createSprite(4, 4, [][]int{
		{0, 1, 1, 0},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{0, 1, 1, 0},
	})
}

// loadBackground creates a sparse starfield texture
func (am *AssetManager) loadBackground() {
	pattern := make([][]int, 64)
	for i := range pattern {
		pattern[i] = make([]int, 64)
		if i%8 == 0 && (i/8)%3 == 0 {
			pattern[i][(i*13)%64] = 1
		}
	}
	am.backgroundTexture = am.createSprite(64, 64, pattern)
}

// createSprite creates a texture from a 2D pixel pattern
func (am *AssetManager) createSprite(width, height int, pattern [][]int) common.Drawable {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	for y, row := range pattern {
		if y >= height {
			break
		}
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}

	return common.NewTextureSingle(common.NewImageObject(img))
}

// GetShipSprite returns the player ship sprite
func (am *AssetManager) GetShipSprite() common.Drawable {
	return am.shipSprite
}

// GetBodySprite returns the sprite for a body state string, falling
// back to the solid sprite for unknown states
func (am *AssetManager) GetBodySprite(state string) common.Drawable {
	if sprite, exists := am.bodySprites[state]; exists {
		return sprite
	}
	return am.bodySprites["healthy"]
}

// GetTorpedoSprite returns the torpedo sprite
func (am *AssetManager) GetTorpedoSprite() common.Drawable {
	return am.torpedoSprite
}

// GetBackgroundTexture returns the starfield background
func (am *AssetManager) GetBackgroundTexture() common.Drawable {
	return am.backgroundTexture
}
