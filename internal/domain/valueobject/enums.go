package valueobject

// Role of an account within the learning platform.
type Role string

const (
	RoleStudent Role = "alumno"
	RoleTeacher Role = "docente"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Environment is where the user primarily studies or teaches.
type Environment string

const (
	EnvironmentHome           Environment = "casa"
	EnvironmentPrimary        Environment = "primaria"
	EnvironmentSecondary      Environment = "secundaria"
	EnvironmentPreschool      Environment = "preescolar"
	EnvironmentHighSchool     Environment = "preparatoria"
	EnvironmentUniversity     Environment = "universidad"
	EnvironmentRehabCenter    Environment = "centro_rehabilitacion"
)

var environments = []Environment{
	EnvironmentHome,
	EnvironmentPrimary,
	EnvironmentSecondary,
	EnvironmentPreschool,
	EnvironmentHighSchool,
	EnvironmentUniversity,
	EnvironmentRehabCenter,
}

func (e Environment) Valid() bool {
	for _, v := range environments {
		if e == v {
			return true
		}
	}
	return false
}

// EnvironmentValues lists every accepted environment value.
func EnvironmentValues() []string {
	out := make([]string, len(environments))
	for i, v := range environments {
		out[i] = string(v)
	}
	return out
}

// EducationLevel follows the Mexican education system nomenclature.
type EducationLevel string

const (
	EducationNone        EducationLevel = "ninguno"
	EducationIlliterate  EducationLevel = "analfabeta"
	EducationEarly       EducationLevel = "educacion_inicial"
	EducationPreschool   EducationLevel = "preescolar"
	EducationPrimary     EducationLevel = "primaria"
	EducationSecondary   EducationLevel = "secundaria"
	EducationHSGeneral   EducationLevel = "bachillerato_general"
	EducationHSTechnical EducationLevel = "bachillerato_tecnico"
	EducationHSVocation  EducationLevel = "bachillerato_profesional"
	EducationBachelor    EducationLevel = "licenciatura"
	EducationSpecialty   EducationLevel = "especialidad"
	EducationMasters     EducationLevel = "maestria"
	EducationDoctorate   EducationLevel = "doctorado"
	EducationTSU         EducationLevel = "tecnico_superior_universitario"
	EducationAssociate   EducationLevel = "profesional_asociado"
	EducationNormal      EducationLevel = "educacion_normal"
	EducationAdultLit    EducationLevel = "alfabetizacion_adultos"
	EducationAdultPrim   EducationLevel = "primaria_adultos"
	EducationAdultSec    EducationLevel = "secundaria_adultos"
)

var educationLevels = []EducationLevel{
	EducationNone,
	EducationIlliterate,
	EducationEarly,
	EducationPreschool,
	EducationPrimary,
	EducationSecondary,
	EducationHSGeneral,
	EducationHSTechnical,
	EducationHSVocation,
	EducationBachelor,
	EducationSpecialty,
	EducationMasters,
	EducationDoctorate,
	EducationTSU,
	EducationAssociate,
	EducationNormal,
	EducationAdultLit,
	EducationAdultPrim,
	EducationAdultSec,
}

func (l EducationLevel) Valid() bool {
	for _, v := range educationLevels {
		if l == v {
			return true
		}
	}
	return false
}

// EducationLevelValues lists every accepted education level value.
func EducationLevelValues() []string {
	out := make([]string, len(educationLevels))
	for i, v := range educationLevels {
		out[i] = string(v)
	}
	return out
}
