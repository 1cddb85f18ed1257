// Package recommend maps a maturity percentage to one of four discrete
// maturity levels and the static recommendations attached to each level.
package recommend

// Level is a qualitative maturity label.
type Level string

const (
	LevelInitial   Level = "Initial"
	LevelEssentiel Level = "Essentiel"
	LevelAvance    Level = "Avancé"
	LevelOptimal   Level = "Optimal"
)

// LevelOf maps a percentage to its maturity level. Boundary values fall in
// the lower band: exactly 50 is Essentiel and exactly 75 is Avancé.
func LevelOf(percent int) Level {
	switch {
	case percent > 75:
		return LevelOptimal
	case percent > 50:
		return LevelAvance
	case percent > 25:
		return LevelEssentiel
	default:
		return LevelInitial
	}
}

// Description returns the short characterization displayed under the level.
func Description(l Level) string {
	return descriptions[l]
}

var descriptions = map[Level]string{
	LevelInitial:   "La sécurité repose sur des pratiques informelles. Les fondations restent à construire.",
	LevelEssentiel: "Les mesures de base existent mais restent incomplètes ou irrégulières.",
	LevelAvance:    "Un dispositif structuré est en place. Quelques domaines demandent encore à être consolidés.",
	LevelOptimal:   "La sécurité est pilotée et intégrée aux activités. Maintenez la dynamique d'amélioration.",
}

// Group is one titled block of recommended actions.
type Group struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// For returns the ordered recommendation groups of a level. The content is
// static editorial data, not computed.
func For(l Level) []Group {
	return recommendations[l]
}

var recommendations = map[Level][]Group{
	LevelInitial: {
		{
			Title: "Poser les fondations",
			Items: []string{
				"Désigner un référent sécurité, même à temps partiel",
				"Recenser les équipements, comptes et données de l'organisation",
				"Mettre en place un antivirus et les mises à jour automatiques sur tous les postes",
				"Instaurer des mots de passe individuels et robustes",
			},
		},
		{
			Title: "Protéger l'essentiel",
			Items: []string{
				"Sauvegarder les données critiques au moins une fois par semaine",
				"Conserver une copie de sauvegarde hors du bureau",
				"Sensibiliser le personnel aux courriels de phishing",
			},
		},
	},
	LevelEssentiel: {
		{
			Title: "Structurer les pratiques",
			Items: []string{
				"Formaliser une politique de sécurité courte et la faire signer",
				"Activer la double authentification sur la messagerie et les comptes critiques",
				"Automatiser les sauvegardes et tester une restauration",
				"Établir une procédure simple de signalement des incidents",
			},
		},
		{
			Title: "Renforcer les accès",
			Items: []string{
				"Supprimer les comptes partagés et les accès des anciens membres",
				"Séparer les comptes administrateurs des comptes bureautiques",
				"Restreindre l'accès aux données sensibles aux seules personnes concernées",
			},
		},
	},
	LevelAvance: {
		{
			Title: "Consolider le dispositif",
			Items: []string{
				"Planifier une revue annuelle des risques et des droits d'accès",
				"Documenter le plan de réponse aux incidents et le tester par un exercice",
				"Chiffrer les postes nomades et les supports amovibles",
				"Contractualiser les exigences de sécurité avec les prestataires",
			},
		},
		{
			Title: "Anticiper les crises",
			Items: []string{
				"Rédiger un plan de continuité couvrant les activités essentielles",
				"Identifier des solutions de repli (connexion, matériel, locaux)",
				"Nouer le contact avec le CERT national ou régional",
			},
		},
	},
	LevelOptimal: {
		{
			Title: "Maintenir l'excellence",
			Items: []string{
				"Programmer des exercices de crise réguliers, y compris avec les partenaires",
				"Mesurer l'efficacité du dispositif par des indicateurs suivis en direction",
				"Étendre les exigences de sécurité à l'ensemble de la chaîne partenaires",
			},
		},
		{
			Title: "Partager et progresser",
			Items: []string{
				"Partager les retours d'expérience avec le réseau des ONG de la région",
				"Faire auditer périodiquement le dispositif par un tiers",
				"Suivre l'évolution des menaces ciblant le secteur associatif",
			},
		},
	},
}
