// Package k8s manipulates the local kubeconfig and builds Kubernetes clients.
package k8s

import (
	"errors"
	"fmt"
	"os"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// kubeconfigFileMode is the file mode for kubeconfig files.
const kubeconfigFileMode = 0o600

// ErrContextNotFound is returned when the requested context does not exist in the kubeconfig.
var ErrContextNotFound = errors.New("context not found in kubeconfig")

// SwitchContext points the kubeconfig's current-context at the named context.
// The context must already exist in the file; the cluster manager writes it
// when the cluster is created.
func SwitchContext(kubeconfigPath, contextName string) error {
	kubeconfigBytes, err := os.ReadFile(kubeconfigPath) //nolint:gosec // G304: path comes from validated config
	if err != nil {
		return fmt.Errorf("failed to read kubeconfig: %w", err)
	}

	kubeConfig, err := clientcmd.Load(kubeconfigBytes)
	if err != nil {
		return fmt.Errorf("failed to parse kubeconfig: %w", err)
	}

	_, hasContext := kubeConfig.Contexts[contextName]
	if !hasContext {
		return fmt.Errorf("%w: %q in %s", ErrContextNotFound, contextName, kubeconfigPath)
	}

	if kubeConfig.CurrentContext == contextName {
		return nil
	}

	kubeConfig.CurrentContext = contextName

	result, err := clientcmd.Write(*kubeConfig)
	if err != nil {
		return fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}

	err = os.WriteFile(kubeconfigPath, result, kubeconfigFileMode)
	if err != nil {
		return fmt.Errorf("failed to write kubeconfig: %w", err)
	}

	return nil
}

// NewClientsetForContext builds a Kubernetes clientset for a named context of
// the given kubeconfig file.
func NewClientsetForContext(kubeconfigPath, contextName string) (kubernetes.Interface, error) {
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath},
		&clientcmd.ConfigOverrides{CurrentContext: contextName},
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	return clientset, nil
}
