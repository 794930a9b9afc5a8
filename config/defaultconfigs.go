package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawLastPlayedBackground: true,
		Colors: ConfigColors{
			BoardColor:        28,
			BoardColorAlt:     22,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         64,
			LastPlayedColorBG: 136,
		},
		Symbols: ConfigSymbols{
			BlackDisc:  '●',
			WhiteDisc:  '●',
			EmptyCell:  '·',
			LastPlayed: '◆',
		},
	}

	DefaultConfig = Config{
		Game: GameSettings{
			BoardSize: 8,
			Depth:     3,
		},
		Theme: DefaultTheme,
		History: HistorySettings{
			Enabled: true,
		},
	}
}
