package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	Commands AssetConfig[*commands.Command] `json:"commands"`
	Rooms    AssetConfig[*game.Room]        `json:"rooms"`
	Items    AssetConfig[*game.Item]        `json:"items"`
	Enemies  AssetConfig[*game.Enemy]       `json:"enemies"`
	NPCs     AssetConfig[*game.NPC]         `json:"npcs"`

	// Saves is created if it does not exist.
	Saves SaveConfig `json:"saves"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	enemies, err := c.Enemies.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating enemy store: %w", err)
	}
	npcs, err := c.NPCs.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating npc store: %w", err)
	}

	dict := &game.Dictionary{
		Rooms:   rooms,
		Items:   items,
		Enemies: enemies,
		NPCs:    npcs,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Commands.Validate("commands"))
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Enemies.Validate("enemies"))
	el.Add(c.NPCs.Validate("npcs"))
	el.Add(c.Saves.validate())
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

type SaveConfig struct {
	Path string `json:"path"`
}

func (c *SaveConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("saves: path is required")
	}
	return nil
}

func (c *SaveConfig) BuildFileStore() (*storage.FileStore[*game.SaveGame], error) {
	err := os.MkdirAll(c.Path, 0755)
	if err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return storage.NewFileStore[*game.SaveGame](c.Path)
}
