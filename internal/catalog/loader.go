package catalog

import (
	"embed"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/fatehq/fate-cli/internal/model"
)

//go:embed data/tools.yaml data/questions.yaml
var embedded embed.FS

// toolsFile is the on-disk shape of tools.yaml: rubric metadata plus the
// tool records themselves.
type toolsFile struct {
	Dimensions []model.DimensionInfo `yaml:"dimensions"`
	Tools      []model.Tool          `yaml:"tools"`
}

// questionsFile is the on-disk shape of questions.yaml.
type questionsFile struct {
	Questions []model.QuizQuestion `yaml:"questions"`
}

// Default builds the catalog from the dataset compiled into the binary.
func Default() (*Catalog, error) {
	toolsRaw, err := embedded.ReadFile("data/tools.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read embedded tools")
	}
	questionsRaw, err := embedded.ReadFile("data/questions.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read embedded questions")
	}
	return build(toolsRaw, questionsRaw)
}

// LoadFiles builds the catalog from external YAML files, for maintainers
// iterating on the dataset without recompiling. Either path may be empty,
// in which case the embedded copy of that file is used.
func LoadFiles(toolsPath, questionsPath string) (*Catalog, error) {
	var toolsRaw, questionsRaw []byte

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		toolsRaw, err = readOrEmbedded(toolsPath, "data/tools.yaml")
		return err
	})
	g.Go(func() error {
		var err error
		questionsRaw, err = readOrEmbedded(questionsPath, "data/questions.yaml")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return build(toolsRaw, questionsRaw)
}

func readOrEmbedded(path, embeddedName string) ([]byte, error) {
	if path == "" {
		data, err := embedded.ReadFile(embeddedName)
		return data, eris.Wrapf(err, "catalog: read embedded %s", embeddedName)
	}
	data, err := os.ReadFile(path)
	return data, eris.Wrapf(err, "catalog: read %s", path)
}

func build(toolsRaw, questionsRaw []byte) (*Catalog, error) {
	var tf toolsFile
	if err := yaml.Unmarshal(toolsRaw, &tf); err != nil {
		return nil, eris.Wrap(err, "catalog: unmarshal tools")
	}
	var qf questionsFile
	if err := yaml.Unmarshal(questionsRaw, &qf); err != nil {
		return nil, eris.Wrap(err, "catalog: unmarshal questions")
	}
	return New(tf.Tools, qf.Questions, tf.Dimensions), nil
}

// Lint validates every entry strictly and returns all failures. Unlike New,
// nothing is dropped or tolerated; this backs the `fate validate` command.
func Lint(toolsPath, questionsPath string) []error {
	var errs []error

	toolsRaw, err := readOrEmbedded(toolsPath, "data/tools.yaml")
	if err != nil {
		return []error{err}
	}
	questionsRaw, err := readOrEmbedded(questionsPath, "data/questions.yaml")
	if err != nil {
		return []error{err}
	}

	var tf toolsFile
	if err := yaml.Unmarshal(toolsRaw, &tf); err != nil {
		return []error{eris.Wrap(err, "catalog: unmarshal tools")}
	}
	var qf questionsFile
	if err := yaml.Unmarshal(questionsRaw, &qf); err != nil {
		return []error{eris.Wrap(err, "catalog: unmarshal questions")}
	}

	toolIDs := make(map[string]struct{}, len(tf.Tools))
	for _, t := range tf.Tools {
		if err := model.ValidateTool(t); err != nil {
			errs = append(errs, err)
		}
		if _, dup := toolIDs[t.ID]; dup {
			errs = append(errs, eris.Errorf("catalog: duplicate tool id %q", t.ID))
		}
		toolIDs[t.ID] = struct{}{}
	}

	questionIDs := make(map[string]struct{}, len(qf.Questions))
	for _, q := range qf.Questions {
		if err := model.ValidateQuestion(q); err != nil {
			errs = append(errs, err)
		}
		if _, dup := questionIDs[q.ID]; dup {
			errs = append(errs, eris.Errorf("catalog: duplicate question id %q", q.ID))
		}
		questionIDs[q.ID] = struct{}{}
		for _, o := range q.Options {
			// Sorted so repeated lint runs report weight problems in the
			// same order.
			weightIDs := make([]string, 0, len(o.Weights))
			for toolID := range o.Weights {
				weightIDs = append(weightIDs, toolID)
			}
			sort.Strings(weightIDs)
			for _, toolID := range weightIDs {
				if _, ok := toolIDs[toolID]; !ok {
					errs = append(errs, eris.Errorf("catalog: question %q option %q references unknown tool %q", q.ID, o.ID, toolID))
				}
			}
		}
	}

	return errs
}
