package curriculum

import "strings"

// letterGroups is the Vietnamese alphabet split into the ten study groups.
var letterGroups = []Group{
	{Name: "Nhóm 1: Nguyên âm đầu tiên", Units: []string{"A", "Ă", "Â"}},
	{Name: "Nhóm 2: Âm đầu quen thuộc", Units: []string{"B", "C", "D"}},
	{Name: "Nhóm 3: Phân biệt D – Đ", Units: []string{"Đ", "E", "Ê"}},
	{Name: "Nhóm 4: Âm phụ và nguyên âm dài", Units: []string{"G", "H", "I"}},
	{Name: "Nhóm 5: Âm quen thuộc", Units: []string{"K", "L", "M"}},
	{Name: "Nhóm 6: Âm tròn môi", Units: []string{"N", "O", "Ô"}},
	{Name: "Nhóm 7: Âm minh họa", Units: []string{"Ơ", "P", "Q"}},
	{Name: "Nhóm 8: Âm nổi bật", Units: []string{"R", "S", "T"}},
	{Name: "Nhóm 9: Âm môi", Units: []string{"U", "Ư", "V"}},
	{Name: "Nhóm 10: Kết thúc", Units: []string{"X", "Y"}},
}

var digitGroups = []Group{
	{Name: "Số 0 – 2", Units: []string{"0", "1", "2"}},
	{Name: "Số 3 – 5", Units: []string{"3", "4", "5"}},
	{Name: "Số 6 – 8", Units: []string{"6", "7", "8"}},
	{Name: "Số 9", Units: []string{"9"}},
}

// lowercase returns a copy of groups with every unit lowercased.
func lowercase(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		units := make([]string, len(g.Units))
		for j, u := range g.Units {
			units[j] = strings.ToLower(u)
		}
		out[i] = Group{Name: g.Name, Units: units}
	}
	return out
}

var animalCards = []Card{
	{Name: "Chó", Sound: "Chó kêu gâu gâu!"},
	{Name: "Mèo", Sound: "Mèo kêu meo meo!"},
	{Name: "Voi", Sound: "Voi rống lên!"},
	{Name: "Chim", Sound: "Chim kêu chiếp chiếp!"},
	{Name: "Bò", Sound: "Bò kêu ò...moo!"},
	{Name: "Ngựa", Sound: "Ngựa hí hí!"},
	{Name: "Cừu", Sound: "Cừu kêu be be!"},
	{Name: "Vịt", Sound: "Vịt kêu cạp cạp!"},
	{Name: "Heo", Sound: "Heo kêu ụt ịt!"},
	{Name: "Gà", Sound: "Gà kêu cục tác!"},
}

var defaultCatalog = MustCatalog([]Lesson{
	{ID: "1", Subject: SubjectVietnamese, Title: "Nhận biết chữ cái", Kind: KindSequenced, Groups: letterGroups},
	{ID: "2", Subject: SubjectVietnamese, Title: "Tập viết chữ thường", Kind: KindSequenced, Groups: lowercase(letterGroups)},
	{ID: "4", Subject: SubjectMath, Title: "Học viết số", Kind: KindSequenced, Groups: digitGroups},
	{ID: "5", Subject: SubjectMath, Title: "Học đọc số", Kind: KindSequenced, Groups: digitGroups},
	{ID: "1", Subject: SubjectAnimal, Title: "10 loại động vật quanh chúng ta", Kind: KindSimple, Cards: animalCards},
})

// Default returns the built-in catalogue.
func Default() *Catalog {
	return defaultCatalog
}
