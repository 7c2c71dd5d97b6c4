package assets

import "embed"

//go:embed transcripter.example.yaml
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "transcripter.example.yaml"
