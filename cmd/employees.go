package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/staffdesk/api"
	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/errors"
	"github.com/grovetools/staffdesk/tui/components/table"
	"github.com/grovetools/staffdesk/tui/theme"
)

// NewEmployeesCmd creates the `employees` command group.
func NewEmployeesCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"employees",
		"Manage the employee directory",
	)
	cmd.Long = `Lists and manages employees on the remote service. Mutations are
restricted to the admin account by the server.

Examples:
  # List all employees
  staffdesk employees list

  # Add an employee
  staffdesk employees add --name "Dora Diaz" --position Engineer --department R&D --salary 50000

  # Remove one without the confirmation prompt
  staffdesk employees rm 66b2f1a0 --yes
`

	cmd.AddCommand(newEmployeesListCmd())
	cmd.AddCommand(newEmployeesGetCmd())
	cmd.AddCommand(newEmployeesAddCmd())
	cmd.AddCommand(newEmployeesEditCmd())
	cmd.AddCommand(newEmployeesRmCmd())

	return cmd
}

func newEmployeesListCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"list",
		"List all employees",
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if _, err := requireCredentials(); err != nil {
			return err
		}

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		employees, err := client.ListEmployees(cmd.Context())
		if err != nil {
			return err
		}

		if cli.GetOptions(cmd).JSONOutput {
			data, err := json.MarshalIndent(employees, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(employees) == 0 {
			fmt.Println(theme.DefaultTheme.Muted.Render("No employees."))
			return nil
		}

		tbl := table.NewStyledTable()
		tbl.Headers("ID", "NAME", "POSITION", "DEPARTMENT", "SALARY")
		for _, emp := range employees {
			tbl.Row(emp.ID, emp.Name, emp.Position, emp.Department,
				fmt.Sprintf("%.2f", emp.Salary))
		}
		fmt.Println(tbl.Render())
		return nil
	}

	return cmd
}

func newEmployeesGetCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"get <id>",
		"Show one employee",
	)
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if _, err := requireCredentials(); err != nil {
			return err
		}

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		employee, err := client.GetEmployee(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if cli.GetOptions(cmd).JSONOutput {
			data, err := json.MarshalIndent(employee, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printEmployee(employee)
		return nil
	}

	return cmd
}

func newEmployeesAddCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"add",
		"Add a new employee",
	)

	cmd.Flags().String("name", "", "Employee name")
	cmd.Flags().String("position", "", "Job title")
	cmd.Flags().String("department", "", "Department")
	cmd.Flags().Float64("salary", 0, "Annual salary")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if _, err := requireCredentials(); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return errors.InvalidInput("name", "must not be empty")
		}
		position, _ := cmd.Flags().GetString("position")
		department, _ := cmd.Flags().GetString("department")
		salary, _ := cmd.Flags().GetFloat64("salary")
		if salary < 0 {
			return errors.InvalidInput("salary", "must not be negative")
		}

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		result, err := client.CreateEmployee(cmd.Context(), api.CreateEmployeeRequest{
			Name:       name,
			Position:   position,
			Department: department,
			Salary:     salary,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s Added %s (%s)\n",
			theme.RenderStatus("success", "✓"), name, result.InsertedID)
		return nil
	}

	return cmd
}

func newEmployeesEditCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"edit <id>",
		"Update an existing employee",
	)
	cmd.Args = cobra.ExactArgs(1)

	cmd.Flags().String("name", "", "Employee name")
	cmd.Flags().String("position", "", "Job title")
	cmd.Flags().String("department", "", "Department")
	cmd.Flags().Float64("salary", -1, "Annual salary")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if _, err := requireCredentials(); err != nil {
			return err
		}

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		// Start from the current record so unset flags keep their values.
		current, err := client.GetEmployee(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		req := api.UpdateEmployeeRequest{
			Name:       current.Name,
			Position:   current.Position,
			Department: current.Department,
			Salary:     current.Salary,
		}
		if cmd.Flags().Changed("name") {
			req.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("position") {
			req.Position, _ = cmd.Flags().GetString("position")
		}
		if cmd.Flags().Changed("department") {
			req.Department, _ = cmd.Flags().GetString("department")
		}
		if cmd.Flags().Changed("salary") {
			req.Salary, _ = cmd.Flags().GetFloat64("salary")
			if req.Salary < 0 {
				return errors.InvalidInput("salary", "must not be negative")
			}
		}

		result, err := client.UpdateEmployee(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}

		if result.ModifiedCount == 0 {
			fmt.Println(theme.DefaultTheme.Muted.Render("Nothing changed."))
			return nil
		}
		fmt.Printf("%s Updated %s\n", theme.RenderStatus("success", "✓"), req.Name)
		return nil
	}

	return cmd
}

func newEmployeesRmCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"rm <id>",
		"Remove an employee",
	)
	cmd.Args = cobra.ExactArgs(1)
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if _, err := requireCredentials(); err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			answer, err := readLine(fmt.Sprintf("Remove employee %s? [y/N] ", args[0]))
			if err != nil {
				return err
			}
			if answer != "y" && answer != "Y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		result, err := client.DeleteEmployee(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if result.DeletedCount == 0 {
			return errors.EmployeeNotFound(args[0])
		}
		fmt.Printf("%s Removed\n", theme.RenderStatus("success", "✓"))
		return nil
	}

	return cmd
}

func printEmployee(emp api.Employee) {
	t := theme.DefaultTheme
	fmt.Println(t.Bold.Render(emp.Name))
	fmt.Printf("ID:          %s\n", emp.ID)
	fmt.Printf("Position:    %s\n", emp.Position)
	fmt.Printf("Department:  %s\n", emp.Department)
	fmt.Printf("Salary:      %.2f\n", emp.Salary)
	if emp.CreatedBy != "" {
		fmt.Println(t.Muted.Render("Created by " + emp.CreatedBy))
	}
}
