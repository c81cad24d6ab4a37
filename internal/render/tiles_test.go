package render

import "testing"

func TestBuildTileURL(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		job  tileJob
		want string
	}{
		{
			"plain template",
			"https://tile.example.com/{z}/{x}/{y}.png",
			tileJob{Z: 4, X: 2, Y: 5},
			"https://tile.example.com/4/2/5.png",
		},
		{
			"negative x wraps into the grid",
			"https://tile.example.com/{z}/{x}/{y}.png",
			tileJob{Z: 2, X: -1, Y: 1},
			"https://tile.example.com/2/3/1.png",
		},
		{
			"x beyond the grid wraps",
			"https://tile.example.com/{z}/{x}/{y}.png",
			tileJob{Z: 2, X: 5, Y: 1},
			"https://tile.example.com/2/1/1.png",
		},
		{
			"tms y flip",
			"https://tile.example.com/{z}/{x}/{tms_y}.png",
			tileJob{Z: 2, X: 0, Y: 1},
			"https://tile.example.com/2/0/2.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildTileURL(tt.tpl, tt.job); got != tt.want {
				t.Errorf("buildTileURL(%q, %+v) = %q, want %q", tt.tpl, tt.job, got, tt.want)
			}
		})
	}
}
