package epicycle_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEpicycle(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Epicycle Suite")
}
