package seed

// File is the top-level structure of a seed file:
//
//	services:
//	  - name: API
//	    description: Public REST API
//	    status: Operational
type File struct {
	Services []Entry `yaml:"services"`
}

// Entry is one service to create.
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Status      string `yaml:"status,omitempty"`
}
