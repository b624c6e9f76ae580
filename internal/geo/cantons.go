package geo

// Canton maps a folded canton name to its province.
type Canton struct {
	Key       string
	Provincia string
}

// Cantons is the lookup table used to infer a province from a canton. Keys are
// lowercase without diacritics except where the official name keeps "ñ".
// Order matters: the first containment match wins.
var Cantons = []Canton{
	{"san jose", "San José"}, {"escazu", "San José"}, {"desamparados", "San José"},
	{"puriscal", "San José"}, {"tarrazu", "San José"}, {"aserri", "San José"},
	{"mora", "San José"}, {"goicoechea", "San José"}, {"santa ana", "San José"},
	{"alajuelita", "San José"}, {"vazquez de coronado", "San José"}, {"acosta", "San José"},
	{"tibas", "San José"}, {"moravia", "San José"}, {"montes de oca", "San José"},
	{"turrubares", "San José"}, {"dota", "San José"}, {"curridabat", "San José"},
	{"perez zeledon", "San José"}, {"leon cortes", "San José"},

	{"alajuela", "Alajuela"}, {"san ramon", "Alajuela"}, {"grecia", "Alajuela"},
	{"san mateo", "Alajuela"}, {"atenas", "Alajuela"}, {"naranjo", "Alajuela"},
	{"palmares", "Alajuela"}, {"poas", "Alajuela"}, {"orotina", "Alajuela"},
	{"san carlos", "Alajuela"}, {"zarcero", "Alajuela"}, {"sarchi", "Alajuela"},
	{"upala", "Alajuela"}, {"los chiles", "Alajuela"}, {"guatuso", "Alajuela"},
	{"rio cuarto", "Alajuela"},

	{"cartago", "Cartago"}, {"paraiso", "Cartago"}, {"la union", "Cartago"},
	{"jimenez", "Cartago"}, {"turrialba", "Cartago"}, {"alvarado", "Cartago"},
	{"oreamuno", "Cartago"}, {"el guarco", "Cartago"},

	{"heredia", "Heredia"}, {"barva", "Heredia"}, {"santo domingo", "Heredia"},
	{"santa barbara", "Heredia"}, {"san rafael", "Heredia"}, {"san isidro", "Heredia"},
	{"belen", "Heredia"}, {"flores", "Heredia"}, {"san pablo", "Heredia"},
	{"sarapiqui", "Heredia"},

	{"liberia", "Guanacaste"}, {"nicoya", "Guanacaste"}, {"santa cruz", "Guanacaste"},
	{"bagaces", "Guanacaste"}, {"carrillo", "Guanacaste"}, {"cañas", "Guanacaste"},
	{"abangares", "Guanacaste"}, {"tilaran", "Guanacaste"}, {"nandayure", "Guanacaste"},
	{"la cruz", "Guanacaste"}, {"hojancha", "Guanacaste"},

	{"puntarenas", "Puntarenas"}, {"esparza", "Puntarenas"}, {"buenos aires", "Puntarenas"},
	{"montes de oro", "Puntarenas"}, {"osa", "Puntarenas"}, {"quepos", "Puntarenas"},
	{"golfito", "Puntarenas"}, {"coto brus", "Puntarenas"}, {"parrita", "Puntarenas"},
	{"corredores", "Puntarenas"}, {"garabito", "Puntarenas"}, {"monteverde", "Puntarenas"},
	{"puerto jimenez", "Puntarenas"},

	{"limon", "Limón"}, {"pococi", "Limón"}, {"siquirres", "Limón"},
	{"talamanca", "Limón"}, {"matina", "Limón"}, {"guacimo", "Limón"},
}
