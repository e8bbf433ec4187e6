// Package store is the accessor for the shared Team Brain configuration
// document: filesystem paths, agent profiles and tool settings kept in one
// JSON file.
//
// A Store is opened once and passed to whatever needs it; tools that only
// read should accept a Reader. Values are addressed either through the
// section accessors (GetPath, GetAgent, GetSetting) or with dotted keys:
//
//	s, err := store.Open(store.WithPath("/srv/hq/team_brain_config.json"))
//	model, err := s.Get("agents.ATLAS.model")
//	err = s.Set("settings.log_level", store.String("DEBUG"))
//	err = s.Save()
//
// Missing paths and agents are errors; missing settings are not. Nothing is
// written to disk except by Open (first run) and Save.
package store
