// Package asset reads model manifests and moves textures between files and
// float pixel buffers.
//
// A manifest lists materials with a base color texture and an optional
// normal map slot:
//
//	materials:
//	  - name: Body_SKIN
//	    base_color: textures/body.png
//	    normal:
//	      texture: textures/Body_SKIN_normal.png
//	      scale: 1.0
//
// Relative paths resolve against the manifest's directory. Source decodes
// base color textures (once per file), Sink writes generated normal maps
// and points the material's normal slot at them, and SaveManifest writes
// the updated manifest back.
package asset
